package attempt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in      string
		want    Choice
		wantErr error
	}{
		{in: "a", want: ChoiceA},
		{in: "B", want: ChoiceB},
		{in: " c ", want: ChoiceC},
		{in: "D", want: ChoiceD},
		{in: "e", wantErr: ErrInvalidChoice},
		{in: "", wantErr: ErrInvalidChoice},
		{in: "ab", wantErr: ErrInvalidChoice},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseChoice(tt.in)
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
