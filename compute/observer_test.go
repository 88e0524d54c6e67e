package compute

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mandel "github.com/marben/mandel_explorer"
)

func TestMailboxOrder(t *testing.T) {
	mb := NewMailbox()
	for i := range uint32(1000) {
		mb.Send(mandel.ProgressEvent(i, i+1, 1000))
	}
	mb.Close()
	mb.Send(mandel.EndEvent())

	var got []uint32
	for ev := range mb.C() {
		got = append(got, ev.Row)
	}
	require.Len(t, got, 1000)
	for i, r := range got {
		assert.EqualValues(t, i, r)
	}
}

func TestMailboxConcurrentSenders(t *testing.T) {
	mb := NewMailbox()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				mb.Send(mandel.StartEvent())
			}
		}()
	}

	count := make(chan int)
	go func() {
		n := 0
		for range mb.C() {
			n++
		}
		count <- n
	}()
	wg.Wait()
	mb.Close()
	assert.Equal(t, 400, <-count)
}

func TestChanObserverDrops(t *testing.T) {
	ch := make(chan mandel.ComputeEvent, 1)
	obs := ChanObserver(ch)
	obs.Send(mandel.StartEvent())
	obs.Send(mandel.EndEvent())

	assert.Equal(t, mandel.StartEvent(), <-ch)
	assert.Empty(t, ch)
}

func TestSetWithFullObserver(t *testing.T) {
	ch := make(chan mandel.ComputeEvent)
	set, err := Set(nil, ChanObserver(ch), settingsFor(mandel.Double, 8, 8, 10))
	require.NoError(t, err)
	assert.True(t, set.Ready())
}
