package archive

import (
	"archive/tar"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/iainlane/appstream-generator/internal/core/entities"
	"github.com/iainlane/appstream-generator/internal/core/usecases"
)

// arMagic is the fixed 8-byte global header of the common "ar" archive
// format Debian binary packages are themselves wrapped in.
const arMagic = "!<arch>\n"

// arHeaderSize is the fixed size of each ar member header.
const arHeaderSize = 60

// PayloadReader extracts desktop-entry files out of a Package's archive
// payload. It implements usecases.PackagePayloadReader.
type PayloadReader struct {
	fetcher usecases.Fetcher
	root    string
	tmpDir  string
}

var _ usecases.PackagePayloadReader = (*PayloadReader)(nil)

// NewPayloadReader creates a PayloadReader rooted at root, using tmpDir as
// fetch scratch space.
func NewPayloadReader(fetcher usecases.Fetcher, root, tmpDir string) *PayloadReader {
	return &PayloadReader{fetcher: fetcher, root: root, tmpDir: tmpDir}
}

// DesktopEntries fetches pkg's payload and returns the contents of every
// "usr/share/applications/*.desktop" member it contains, keyed by basename.
func (p *PayloadReader) DesktopEntries(ctx context.Context, pkg *entities.Package) (map[string][]byte, error) {
	localPath, err := p.fetcher.Fetch(ctx, p.root, p.tmpDir, pkg.Filename+".%s")
	if err != nil {
		return nil, fmt.Errorf("fetch payload for %s: %w", pkg.Pkid(), err)
	}

	raw, err := os.ReadFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("read payload %s: %w", localPath, err)
	}

	members, err := parseAr(raw)
	if err != nil {
		return nil, fmt.Errorf("parse ar archive %s: %w", localPath, err)
	}

	dataMember, dataName := findDataMember(members)
	if dataMember == nil {
		return nil, fmt.Errorf("no data.tar member found in %s", localPath)
	}

	tarReader, err := openDataTar(dataName, dataMember)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", dataName, err)
	}

	return extractDesktopFiles(tarReader)
}

func findDataMember(members map[string][]byte) ([]byte, string) {
	for name, contents := range members {
		if strings.HasPrefix(name, "data.tar") {
			return contents, name
		}
	}
	return nil, ""
}

func openDataTar(name string, contents []byte) (*tar.Reader, error) {
	switch {
	case strings.HasSuffix(name, ".tar"):
		return tar.NewReader(bytes.NewReader(contents)), nil
	case strings.HasSuffix(name, ".tar.gz"):
		gz, err := gzip.NewReader(bytes.NewReader(contents))
		if err != nil {
			return nil, err
		}
		return tar.NewReader(gz), nil
	case strings.HasSuffix(name, ".tar.bz2"):
		return tar.NewReader(bzip2.NewReader(bytes.NewReader(contents))), nil
	default:
		return nil, fmt.Errorf("unsupported data archive compression: %s", name)
	}
}

func extractDesktopFiles(tr *tar.Reader) (map[string][]byte, error) {
	out := make(map[string][]byte)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar entry: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		name := strings.TrimPrefix(header.Name, "./")
		if !isDesktopEntryPath(name) {
			continue
		}
		contents, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		out[path.Base(name)] = contents
	}
	return out, nil
}

func isDesktopEntryPath(name string) bool {
	return strings.Contains(name, "/applications/") && strings.HasSuffix(name, ".desktop")
}

// parseAr splits an ar-format archive into its named members.
func parseAr(data []byte) (map[string][]byte, error) {
	if !bytes.HasPrefix(data, []byte(arMagic)) {
		return nil, fmt.Errorf("missing ar magic header")
	}

	members := make(map[string][]byte)
	offset := len(arMagic)

	for offset+arHeaderSize <= len(data) {
		header := data[offset : offset+arHeaderSize]
		name := strings.TrimSpace(string(header[0:16]))
		name = strings.TrimSuffix(name, "/")
		sizeField := strings.TrimSpace(string(header[48:58]))

		size, err := strconv.Atoi(sizeField)
		if err != nil {
			return nil, fmt.Errorf("malformed ar member size %q: %w", sizeField, err)
		}

		start := offset + arHeaderSize
		end := start + size
		if end > len(data) {
			return nil, fmt.Errorf("ar member %s truncated", name)
		}

		members[name] = data[start:end]

		offset = end
		if offset%2 == 1 {
			offset++ // members are padded to an even boundary
		}
	}

	return members, nil
}
