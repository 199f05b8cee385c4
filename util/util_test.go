package util

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzhukovs/podman-desktop-sub003/environment"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "5.2.0", want: "5.2.0"},
		{in: "v5.2.1", want: "5.2.1"},
		{in: "13.4", want: "13.4.0"},
		{in: "14", want: "14.0.0"},
		{in: "19045", want: "19045.0.0"},
		{in: "5.3.0-dev", want: "5.3.0-dev"},
		{in: "5.3-rc1", want: "5.3.0-rc1"},
		{in: " 12.3.1\n", want: "12.3.1"},
		{in: "", wantErr: true},
		{in: "podman", wantErr: true},
		{in: "-dev", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseWindowsBuild(t *testing.T) {
	build, err := parseWindowsBuild("10.0.19045 Build 19045.3803")
	require.NoError(t, err)
	assert.Equal(t, "19045", build)

	_, err = parseWindowsBuild("unknown")
	assert.Error(t, err)
}

func TestWindowsBuild(t *testing.T) {
	if !Windows() {
		_, err := WindowsBuild(context.Background())
		assert.Error(t, err)
		return
	}

	orig := kernelVersion
	defer func() { kernelVersion = orig }()
	kernelVersion = func(context.Context) (string, error) { return "10.0.22631 Build 22631.4317", nil }

	build, err := WindowsBuild(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "22631", build)
}

type swVers string

func (s swVers) Exec(context.Context, string, ...string) (environment.Result, error) {
	return environment.Result{Stdout: string(s)}, nil
}

func TestMacOSProductVersion(t *testing.T) {
	v, err := MacOSProductVersion(context.Background(), swVers("12.4\n"))
	if !MacOS() {
		assert.Error(t, err)
		return
	}
	require.NoError(t, err)
	assert.Equal(t, "12.4.0", v)
}
