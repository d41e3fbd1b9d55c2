package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := InvalidPairIndex("pair 3 out of range")
	wrapped := Wrap(base, "validating pairs")

	assert.Equal(t, CodeInvalidPairIndex, GetCode(wrapped))
	assert.True(t, HasCode(wrapped, CodeInvalidPairIndex))
	assert.Equal(t, "validating pairs: pair 3 out of range", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrap_ForeignErrorBecomesInternal(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("disk on fire"), "loading")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
}

func TestGetCode_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("row 4: %w", InvalidSize("empty sample"))
	assert.Equal(t, CodeInvalidSize, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
	assert.False(t, HasCode(nil, CodeInvalidSize))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeReadError, fmt.Errorf("boom"))
	assert.Equal(t, CodeReadError, GetCode(err))
	assert.Equal(t, "boom", err.Error())
	assert.Nil(t, WithCode(CodeReadError, nil))
}

func TestIsInvalid(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{InvalidSize("x"), true},
		{InvalidPairIndex("x"), true},
		{InvalidPValue("x"), true},
		{InvalidInput("x"), true},
		{ConfigInvalid("x"), false},
		{ReadError("file", fmt.Errorf("x")), false},
		{fmt.Errorf("x"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsInvalid(tt.err), "%v", tt.err)
	}
}
