package platform_test

import (
	"runtime"
	"testing"

	"github.com/arthur-debert/dotsetup/pkg/platform"
	"github.com/arthur-debert/dotsetup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linux(files map[string]string) *testutil.Platform {
	return &testutil.Platform{Kernel: "Linux", Files: files}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		desc     *testutil.Platform
		wantKind platform.Kind
		wantID   string
	}{
		{
			name:     "darwin",
			desc:     testutil.MacOS(),
			wantKind: platform.KindMacOS,
		},
		{
			name:     "arch release file",
			desc:     linux(map[string]string{platform.ArchReleaseFile: ""}),
			wantKind: platform.KindArch,
		},
		{
			name:     "fedora release file",
			desc:     linux(map[string]string{platform.FedoraReleaseFile: "Fedora release 40"}),
			wantKind: platform.KindFedora,
		},
		{
			name: "manjaro via ID_LIKE",
			desc: linux(map[string]string{
				platform.OSReleaseFile: "NAME=\"Manjaro Linux\"\nID=manjaro\nID_LIKE=arch\n",
			}),
			wantKind: platform.KindArch,
			wantID:   "manjaro",
		},
		{
			name: "arch via ID",
			desc: linux(map[string]string{
				platform.OSReleaseFile: "ID=arch\n",
			}),
			wantKind: platform.KindArch,
			wantID:   "arch",
		},
		{
			name: "fedora derivative via quoted ID_LIKE list",
			desc: linux(map[string]string{
				platform.OSReleaseFile: "ID=nobara\nID_LIKE=\"rhel centos fedora\"\n",
			}),
			wantKind: platform.KindFedora,
			wantID:   "nobara",
		},
		{
			name: "debian is unsupported",
			desc: linux(map[string]string{
				platform.OSReleaseFile: "ID=debian\nPRETTY_NAME=\"Debian GNU/Linux 12\"\n",
			}),
			wantKind: platform.KindUnsupported,
			wantID:   "debian",
		},
		{
			name:     "linux without any marker",
			desc:     linux(nil),
			wantKind: platform.KindUnsupported,
		},
		{
			name:     "other kernel",
			desc:     &testutil.Platform{Kernel: "FreeBSD"},
			wantKind: platform.KindUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := platform.Detect(tt.desc)
			assert.Equal(t, tt.wantKind, info.Kind)
			assert.Equal(t, tt.wantID, info.ID)
			assert.Equal(t, tt.wantKind != platform.KindUnsupported, info.Supported())
		})
	}
}

func TestDetect_DarwinNeverReadsReleaseFiles(t *testing.T) {
	desc := testutil.MacOS()
	platform.Detect(desc)
	assert.Empty(t, desc.Reads)
}

func TestParseOSRelease(t *testing.T) {
	data := []byte(`# comment
NAME="Fedora Linux"
VERSION_ID=40
ID=fedora
PRETTY_NAME="Fedora Linux 40 (Workstation Edition)"
HOME_URL='https://fedoraproject.org/'
`)
	fields, err := platform.ParseOSRelease(data)
	require.NoError(t, err)

	assert.Equal(t, "fedora", fields["ID"])
	assert.Equal(t, "40", fields["VERSION_ID"])
	assert.Equal(t, "Fedora Linux 40 (Workstation Edition)", fields["PRETTY_NAME"])
	assert.Equal(t, "https://fedoraproject.org/", fields["HOME_URL"])
}

func TestInfoString(t *testing.T) {
	assert.Equal(t, "Arch Linux", platform.Info{Kind: platform.KindArch, PrettyName: "Arch Linux"}.String())
	assert.Equal(t, "Linux (debian)", platform.Info{Kernel: "Linux", ID: "debian"}.String())
	assert.Equal(t, "FreeBSD", platform.Info{Kernel: "FreeBSD"}.String())
}

func TestHostKernelName(t *testing.T) {
	name := platform.Host().KernelName()
	switch runtime.GOOS {
	case "darwin":
		assert.Equal(t, "Darwin", name)
	case "linux":
		assert.Equal(t, "Linux", name)
	default:
		assert.NotEmpty(t, name)
	}
}
