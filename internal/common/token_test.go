package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "trailing spaces", header: "Bearer tok  ", want: "tok"},
		{name: "empty header", header: "", wantErr: ErrMissingToken},
		{name: "no prefix", header: "abc.def.ghi", wantErr: ErrMissingToken},
		{name: "basic scheme", header: "Basic dXNlcjpwdw==", wantErr: ErrMissingToken},
		{name: "prefix only", header: "Bearer ", wantErr: ErrMissingToken},
		{name: "lowercase scheme", header: "bearer tok", wantErr: ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
