package fatinspect

import (
	"strings"

	"github.com/aligator/fatinspect/checkpoint"
	"golang.org/x/text/encoding/charmap"
)

// PathToken is one path segment in the form of a directory entry base name:
// lower-cased code page 437 bytes, padded with spaces to 8 bytes.
type PathToken [shortNameLen]byte

func (t PathToken) String() string {
	return string(t[:])
}

// TokenizePath splits an absolute path into short name tokens.
// The path must start with "/" and must not end with "/". Empty segments
// are ignored. Every segment must fit into 8 code page 437 bytes.
func TokenizePath(path string) ([]PathToken, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, checkpoint.Reason(ErrInvalidPathSyntax, "%q is not absolute", path)
	}
	if strings.HasSuffix(path, "/") {
		return nil, checkpoint.Reason(ErrInvalidPathSyntax, "%q ends with a slash", path)
	}

	var tokens []PathToken
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}

		token, err := newPathToken(segment)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

func newPathToken(segment string) (PathToken, error) {
	token := PathToken{' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '}

	i := 0
	for _, r := range segment {
		var c byte
		if r < 0x80 {
			c = toLowerASCII(byte(r))
		} else {
			var ok bool
			c, ok = charmap.CodePage437.EncodeRune(r)
			if !ok {
				return PathToken{}, checkpoint.Reason(ErrInvalidPathSyntax, "segment %q contains %q which has no short name form", segment, r)
			}
		}

		if i >= shortNameLen {
			return PathToken{}, checkpoint.Reason(ErrInvalidPathSyntax, "segment %q is longer than %d bytes", segment, shortNameLen)
		}
		token[i] = c
		i++
	}

	return token, nil
}

// Match is a file found by Lookup.
type Match struct {
	// Path is the display path of the file, e.g. "/docs/readme.txt".
	Path  string
	Entry DirEntry
}

// Lookup resolves an absolute path to the files it names.
//
// Only the 8 byte base names are compared, so "/docs/readme" finds
// README.TXT as well as README.MD. Every matching file is returned in
// traversal order. Directories are never a match for the last token.
// The path is checked before anything is read from the image.
// If nothing matches the error is ErrPathNotFound.
func (fs *Fs) Lookup(path string) ([]Match, error) {
	tokens, err := TokenizePath(path)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, checkpoint.Reason(ErrPathNotFound, "%q names no file", path)
	}

	last := len(tokens) - 1
	var matches []Match
	err = fs.traverse(func(depth int, p string, entry DirEntry) (bool, error) {
		if entry.ShortName() != tokens[depth] {
			return false, nil
		}

		if !entry.IsDir() {
			if depth == last {
				matches = append(matches, Match{Path: p, Entry: entry})
			}
			return false, nil
		}

		// A directory can only lead to a match if tokens are left.
		return depth < last, nil
	})
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, checkpoint.Reason(ErrPathNotFound, "%q", path)
	}

	fs.log.Debugw("path resolved", "path", path, "matches", len(matches))
	return matches, nil
}
