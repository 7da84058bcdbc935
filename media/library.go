package media

import (
	"encoding/hex"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/PrayerWall/models"
)

// RefPrefix prefixes every reference handed out by a Library.
const RefPrefix = "media/"

// Blob is a stored payload together with its reference metadata.
type Blob struct {
	models.MediaRef
	Data []byte
}

// Library keeps accepted payloads for the lifetime of the process so their
// references can be rendered or played back.
type Library struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

func NewLibrary() *Library {
	return &Library{blobs: make(map[string]Blob)}
}

// Put stores a copy of f and returns its reference.
func (l *Library) Put(f File) models.MediaRef {
	sum := blake2b.Sum256(f.Data)
	data := make([]byte, len(f.Data))
	copy(data, f.Data)

	ref := models.MediaRef{
		Ref:        RefPrefix + uuid.NewString(),
		Media_Type: f.MediaType,
		Size:       int64(len(data)),
		File_Name:  f.Name,
		Digest:     hex.EncodeToString(sum[:]),
	}

	l.mu.Lock()
	l.blobs[ref.Ref] = Blob{MediaRef: ref, Data: data}
	l.mu.Unlock()

	return ref
}

// Get returns the blob stored under ref.
func (l *Library) Get(ref string) (Blob, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.blobs[ref]
	return b, ok
}

// Release forgets the given references. Unknown references are ignored.
func (l *Library) Release(refs ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, ref := range refs {
		delete(l.blobs, ref)
	}
}

// Len returns the number of stored blobs.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.blobs)
}

// IsLibraryRef reports whether ref was minted by a Library.
func IsLibraryRef(ref string) bool {
	return strings.HasPrefix(ref, RefPrefix)
}
