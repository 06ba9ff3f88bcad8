package progress

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogProgressTracker(t *testing.T) {
	var out bytes.Buffer
	tracker := NewLogProgressTracker(log.New(&out, "", 0), 2)
	tracker.SetMessage("storing runs")
	tracker.SetDone(1)
	assert.Empty(t, out.String(), "odd updates are skipped")

	tracker.SetDone(2)
	assert.Equal(t, "storing runs: 2\n", out.String())

	out.Reset()
	tracker.SetTotal(10)
	tracker.SetDone(3)
	tracker.MarkFinished()
	assert.Equal(t, "storing runs: 3/10\n", out.String())
	assert.Equal(t, 3, tracker.Done())

	out.Reset()
	tracker.SetError(errors.New("disk full"))
	assert.Equal(t, "storing runs: error: disk full\n", out.String())
}
