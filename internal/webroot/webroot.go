// Package webroot maps request targets onto files under a directory that
// some other process keeps filled with an HLS manifest and its segments.
//
// Targets are joined onto the root as-is. There is no protection against
// "../" or symlinks leading outside the root: the server is meant for a
// trusted LAN, not the open internet.
package webroot

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// ManifestName is the playlist the bootstrap page points the player at.
const ManifestName = "out.m3u8"

// BootstrapPage is served for "/".
const BootstrapPage = `<html>
<head>
<title>capture session</title>
</head>
<body>
<video controls="controls" src="` + ManifestName + `">
</video>
</body>
</html>
`

type Kind int

const (
	Bootstrap Kind = iota + 1
	Found
	NotFound
	ReadError
)

var KindName = map[Kind]string{
	Bootstrap: "bootstrap",
	Found:     "found",
	NotFound:  "not_found",
	ReadError: "read_error",
}

func (k Kind) String() string {
	if name, ok := KindName[k]; ok {
		return name
	}
	return "unknown"
}

// Resolution is the outcome of looking up one target. Data and Ext are
// only set for Found; Err only for ReadError.
type Resolution struct {
	Kind Kind
	Data []byte
	Ext  string
	Err  error
}

// Resolve looks target up under root. The whole file is read into memory.
func Resolve(root, target string) Resolution {
	if target == "/" {
		return Resolution{Kind: Bootstrap}
	}

	name := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(target, "/")))

	if _, err := os.Stat(name); err != nil {
		// A path running through a regular file is absent, not unreadable.
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return Resolution{Kind: NotFound}
		}
		return Resolution{Kind: ReadError, Err: err}
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return Resolution{Kind: ReadError, Err: err}
	}

	return Resolution{
		Kind: Found,
		Data: data,
		Ext:  Extension(name),
	}
}

// Extension returns what follows the last "." of the final path element,
// or "" when there is none.
func Extension(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}
