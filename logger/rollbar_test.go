package logger

import (
	"errors"
	"testing"

	config "github.com/anjiri1684/tutoring_center/configs"
	"github.com/stretchr/testify/assert"
)

func TestReporterDisabledWithoutToken(t *testing.T) {
	r := NewReporter(&config.Config{Env: "TEST"})
	assert.False(t, r.enabled)

	assert.NotPanics(t, func() {
		r.Error("write failed", errors.New("boom"), nil)
		r.Critical("job failed", errors.New("boom"))
		r.Close()
	})
}

func TestNilReporter(t *testing.T) {
	var r *Reporter
	assert.NotPanics(t, func() { r.Error("x", errors.New("y"), nil) })
}
