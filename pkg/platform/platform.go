// Package platform classifies the host into one of the families dotsetup
// knows how to provision. All host access goes through a Descriptor so the
// classification can be exercised against fixed inputs.
package platform

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/joho/godotenv"
)

// Well-known release files
const (
	ArchReleaseFile   = "/etc/arch-release"
	FedoraReleaseFile = "/etc/fedora-release"
	OSReleaseFile     = "/etc/os-release"
)

// Kind is the platform family
type Kind string

const (
	KindMacOS       Kind = "macos"
	KindArch        Kind = "arch"
	KindFedora      Kind = "fedora"
	KindUnsupported Kind = "unsupported"
)

// Descriptor is the read-only view of the host used for detection
type Descriptor interface {
	// KernelName is what `uname -s` reports, e.g. "Darwin" or "Linux".
	KernelName() string
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
	LookPath(file string) (string, error)
	Getenv(key string) string
}

// Info is the detection result
type Info struct {
	Kind       Kind
	Kernel     string
	ID         string
	IDLike     []string
	PrettyName string
}

// Supported reports whether a package-manager strategy exists for the host
func (i Info) Supported() bool {
	return i.Kind != KindUnsupported && i.Kind != ""
}

// String describes the host for status output
func (i Info) String() string {
	switch {
	case i.PrettyName != "":
		return i.PrettyName
	case i.ID != "":
		return i.Kernel + " (" + i.ID + ")"
	case i.Kernel != "":
		return i.Kernel
	}
	return string(i.Kind)
}

// Detect classifies the host. Release marker files take precedence over
// os-release so that derivatives shipping them are recognized directly.
func Detect(d Descriptor) Info {
	logger := logging.GetLogger("platform")
	info := Info{Kind: KindUnsupported, Kernel: d.KernelName()}

	switch info.Kernel {
	case "Darwin":
		info.Kind = KindMacOS
		info.PrettyName = "macOS"
		return info
	case "Linux":
	default:
		logger.Debug().Str("kernel", info.Kernel).Msg("Unrecognized kernel")
		return info
	}

	if data, err := d.ReadFile(OSReleaseFile); err == nil {
		if fields, err := ParseOSRelease(data); err == nil {
			info.ID = strings.ToLower(fields["ID"])
			info.IDLike = strings.Fields(strings.ToLower(fields["ID_LIKE"]))
			info.PrettyName = fields["PRETTY_NAME"]
		} else {
			logger.Warn().Err(err).Str("path", OSReleaseFile).Msg("Failed to parse os-release")
		}
	}

	switch {
	case d.Exists(ArchReleaseFile):
		info.Kind = KindArch
	case d.Exists(FedoraReleaseFile):
		info.Kind = KindFedora
	case info.isLike("arch"):
		info.Kind = KindArch
	case info.isLike("fedora"):
		info.Kind = KindFedora
	}

	logger.Debug().
		Str("kind", string(info.Kind)).
		Str("id", info.ID).
		Strs("idLike", info.IDLike).
		Msg("Platform detected")
	return info
}

func (i Info) isLike(id string) bool {
	if i.ID == id {
		return true
	}
	for _, like := range i.IDLike {
		if like == id {
			return true
		}
	}
	return false
}

// ParseOSRelease parses the shell-style KEY=value content of os-release(5)
func ParseOSRelease(data []byte) (map[string]string, error) {
	return godotenv.Unmarshal(string(data))
}

// host reads the real machine
type host struct{}

// Host returns the Descriptor for the running machine
func Host() Descriptor {
	return host{}
}

func (host) KernelName() string {
	switch runtime.GOOS {
	case "darwin":
		return "Darwin"
	case "linux":
		return "Linux"
	case "freebsd":
		return "FreeBSD"
	}
	return runtime.GOOS
}

func (host) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (host) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (host) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (host) Getenv(key string) string {
	return os.Getenv(key)
}
