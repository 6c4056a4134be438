package testutil

import (
	"io/fs"
	"os"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/platform"
)

// Platform is a fixed platform.Descriptor
type Platform struct {
	Kernel string
	// Files maps absolute paths to their content.
	Files map[string]string
	// Binaries maps executable names to the path LookPath reports.
	Binaries map[string]string
	Env      map[string]string
	// Reads records every ReadFile call, in order.
	Reads []string
}

var _ platform.Descriptor = (*Platform)(nil)

// MacOS returns a Darwin host
func MacOS() *Platform {
	return &Platform{Kernel: "Darwin"}
}

// ArchLinux returns an Arch host with the release marker and os-release present
func ArchLinux(binaries ...string) *Platform {
	p := &Platform{
		Kernel: "Linux",
		Files: map[string]string{
			platform.ArchReleaseFile: "",
			platform.OSReleaseFile:   "NAME=\"Arch Linux\"\nPRETTY_NAME=\"Arch Linux\"\nID=arch\n",
		},
	}
	for _, b := range binaries {
		p.WithBinary(b)
	}
	return p
}

// Fedora returns a Fedora host with the release marker and os-release present
func Fedora() *Platform {
	return &Platform{
		Kernel: "Linux",
		Files: map[string]string{
			platform.FedoraReleaseFile: "Fedora release 40 (Forty)\n",
			platform.OSReleaseFile:     "NAME=\"Fedora Linux\"\nID=fedora\nPRETTY_NAME=\"Fedora Linux 40 (Workstation Edition)\"\n",
		},
	}
}

// WithBinary makes name resolvable on the fake search path
func (p *Platform) WithBinary(name string) *Platform {
	if p.Binaries == nil {
		p.Binaries = make(map[string]string)
	}
	p.Binaries[name] = "/usr/bin/" + name
	return p
}

// WithEnv sets an environment variable
func (p *Platform) WithEnv(key, value string) *Platform {
	if p.Env == nil {
		p.Env = make(map[string]string)
	}
	p.Env[key] = value
	return p
}

func (p *Platform) KernelName() string { return p.Kernel }

func (p *Platform) Exists(path string) bool {
	_, ok := p.Files[path]
	return ok
}

func (p *Platform) ReadFile(path string) ([]byte, error) {
	p.Reads = append(p.Reads, path)
	content, ok := p.Files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return []byte(content), nil
}

func (p *Platform) LookPath(file string) (string, error) {
	if path, ok := p.Binaries[file]; ok {
		return path, nil
	}
	return "", &fs.PathError{Op: "lookpath", Path: file, Err: os.ErrNotExist}
}

func (p *Platform) Getenv(key string) string {
	return p.Env[key]
}

// ReadAny reports whether any read path contains substr
func (p *Platform) ReadAny(substr string) bool {
	for _, r := range p.Reads {
		if strings.Contains(r, substr) {
			return true
		}
	}
	return false
}
