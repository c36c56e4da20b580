package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	t.Run("Success dispatches once", func(t *testing.T) {
		r := NewRegistry()

		var got string
		r.Register("pi_1", Callbacks{OnSuccess: func(ref string) { got = ref }})

		r.Success("pi_1")
		assert.Equal(t, "pi_1", got)

		// Second delivery of the same event finds nothing.
		got = ""
		r.Success("pi_1")
		assert.Empty(t, got)
	})

	t.Run("Failure carries the reason", func(t *testing.T) {
		r := NewRegistry()

		var got string
		r.Register("pi_1", Callbacks{OnFailure: func(reason string) { got = reason }})

		r.Failure("pi_1", "card declined")
		assert.Equal(t, "card declined", got)
	})

	t.Run("Dismiss fires the dismiss callback", func(t *testing.T) {
		r := NewRegistry()

		dismissed := false
		r.Register("pi_1", Callbacks{OnDismiss: func() { dismissed = true }})

		r.Dismiss("pi_1")
		assert.True(t, dismissed)
	})

	t.Run("Unknown references are dropped silently", func(t *testing.T) {
		r := NewRegistry()

		assert.NotPanics(t, func() {
			r.Success("unknown")
			r.Failure("unknown", "whatever")
			r.Dismiss("unknown")
		})
	})

	t.Run("Nil callbacks do not panic", func(t *testing.T) {
		r := NewRegistry()
		r.Register("pi_1", Callbacks{})

		assert.NotPanics(t, func() { r.Success("pi_1") })
	})
}
