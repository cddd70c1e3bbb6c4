package relayhelper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryCatch(t *testing.T) {
	t.Run("Testcase #1: no panic", func(t *testing.T) {
		var caught error
		TryCatch{
			Try:   func() {},
			Catch: func(err error) { caught = err },
		}.Do()
		assert.NoError(t, caught)
	})

	t.Run("Testcase #2: panic with error", func(t *testing.T) {
		var caught error
		TryCatch{
			Try:   func() { panic(errors.New("boom")) },
			Catch: func(err error) { caught = err },
		}.Do()
		assert.EqualError(t, caught, "boom")
	})

	t.Run("Testcase #3: panic with non error", func(t *testing.T) {
		var caught error
		TryCatch{
			Try:   func() { panic("boom") },
			Catch: func(err error) { caught = err },
		}.Do()
		assert.EqualError(t, caught, "boom")
	})
}
