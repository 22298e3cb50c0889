package lookup

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/lookupgo/internal/typeclosure"
)

type holder struct{ v any }

func TestValidateObject(t *testing.T) {
	tests := []struct {
		name string
		obj  any
		want error
	}{
		{name: "pointer", obj: &holder{}, want: nil},
		{name: "comparable struct", obj: holder{v: 1}, want: nil},
		{name: "nil", obj: nil, want: ErrMissingObject},
		{name: "type key", obj: typeclosure.KeyOf[holder](), want: ErrInvalidObject},
		{name: "slice", obj: []string{"a"}, want: ErrInvalidObject},
		{name: "struct holding a slice", obj: holder{v: []int{1}}, want: ErrInvalidObject},
		{name: "struct holding a func", obj: holder{v: func() {}}, want: ErrInvalidObject},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateObject(tc.obj)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateRemoval(t *testing.T) {
	require.NoError(t, ValidateRemoval(typeclosure.KeyOf[holder]()))
	require.ErrorIs(t, ValidateRemoval(nil), ErrMissingObject)
	require.ErrorIs(t, ValidateRemoval(holder{v: map[string]int{}}), ErrInvalidObject)
}
