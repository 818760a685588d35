package service_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shreedharkb/Speechify/internal/service"
)

func TestKindOf(t *testing.T) {
	input := service.InputError("No answers provided", nil)
	assert.Equal(t, service.KindInput, service.KindOf(input))
	assert.Equal(t, service.KindInput, service.KindOf(fmt.Errorf("wrapped: %w", input)))
	assert.Equal(t, service.KindInternal, service.KindOf(service.InternalError(errors.New("x"))))
	assert.Equal(t, service.KindInternal, service.KindOf(errors.New("unclassified")))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "input error: No answers provided", service.InputError("No answers provided", nil).Error())

	cause := errors.New("bad threshold")
	err := service.InputError("Invalid JSON", cause)
	assert.Equal(t, "input error: Invalid JSON: bad threshold", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "unknown", service.Kind(0).String())
}
