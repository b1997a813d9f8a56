package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnblob/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		msg   string
		err   error
		code  gn.ErrorCode
		path  string
		inErr string
	}{
		{"create dir", CreateDirError("/blob/dir", cause),
			errcode.CreateDirError, "/blob/dir", "mkdir /blob/dir"},
		{"write config", ConfigFileError("/cfg/config.yaml", cause),
			errcode.ConfigFileError, "/cfg/config.yaml", "write config"},
		{"read config", ReadConfigError("/cfg/config.yaml", cause),
			errcode.ReadConfigError, "/cfg/config.yaml", "read config"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, v.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, v.path, gnErr.Vars[0])

			// caller context and the cause are kept
			assert.Contains(t, gnErr.Err.Error(), "from")
			assert.NotContains(t, gnErr.Msg, "copy")
			assert.Contains(t, gnErr.Err.Error(), v.inErr)
			assert.ErrorIs(t, gnErr.Err, cause)
		})
	}
}
