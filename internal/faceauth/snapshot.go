package faceauth

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kozaktomas/face-vault/internal/faceprint"
	"github.com/kozaktomas/face-vault/internal/store"
)

// snapshotMagic starts every snapshot stream so a truncated or foreign file
// fails fast on import.
var snapshotMagic = [4]byte{'F', 'V', 'L', 'T'}

// SnapshotEntry is one user's template as read from a snapshot stream.
type SnapshotEntry struct {
	UserID   string
	Template faceprint.Faceprints
}

// ExportSnapshot writes every stored template to w. The stream starts with a
// magic marker and a count, followed by length-prefixed user ids and binary
// template records. The store is not modified.
func (s *Service) ExportSnapshot(ctx context.Context, w io.Writer) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not list users: %w", err)
	}

	if _, err := w.Write(snapshotMagic[:]); err != nil {
		return 0, fmt.Errorf("could not write snapshot header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(users))); err != nil {
		return 0, fmt.Errorf("could not write snapshot header: %w", err)
	}

	written := 0
	for _, userID := range users {
		fp, err := s.store.Lookup(ctx, userID)
		if err != nil {
			return written, fmt.Errorf("could not load template for %q: %w", userID, err)
		}
		if fp == nil {
			continue
		}
		if err := writeSnapshotEntry(w, userID, *fp); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func writeSnapshotEntry(w io.Writer, userID string, fp faceprint.Faceprints) error {
	if len(userID) > store.MaxUserIDLength {
		return fmt.Errorf("user id %q too long for snapshot", userID)
	}
	if _, err := w.Write([]byte{byte(len(userID))}); err != nil {
		return fmt.Errorf("could not write snapshot entry for %q: %w", userID, err)
	}
	if _, err := io.WriteString(w, userID); err != nil {
		return fmt.Errorf("could not write snapshot entry for %q: %w", userID, err)
	}
	if err := faceprint.EncodeRecord(w, fp); err != nil {
		return fmt.Errorf("could not write snapshot entry for %q: %w", userID, err)
	}
	return nil
}

// ReadSnapshotHeader consumes and validates the snapshot header, returning
// the number of entries that follow.
func ReadSnapshotHeader(r io.Reader) (int, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return 0, fmt.Errorf("could not read snapshot header: %w", err)
	}
	if magic != snapshotMagic {
		return 0, fmt.Errorf("not a template snapshot file")
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, fmt.Errorf("could not read snapshot header: %w", err)
	}
	return int(count), nil
}

// ReadSnapshotEntry reads one entry from a snapshot stream.
func ReadSnapshotEntry(r io.Reader) (SnapshotEntry, error) {
	var idLen [1]byte
	if _, err := io.ReadFull(r, idLen[:]); err != nil {
		return SnapshotEntry{}, fmt.Errorf("could not read snapshot entry: %w", err)
	}
	id := make([]byte, idLen[0])
	if _, err := io.ReadFull(r, id); err != nil {
		return SnapshotEntry{}, fmt.Errorf("could not read snapshot entry: %w", err)
	}
	fp, err := faceprint.DecodeRecord(r)
	if err != nil {
		return SnapshotEntry{}, fmt.Errorf("could not read snapshot entry for %q: %w", id, err)
	}
	return SnapshotEntry{UserID: string(id), Template: fp}, nil
}

// ImportSnapshot loads templates from r into the store, replacing templates
// for ids that already exist. progress, when non-nil, is called after each
// imported entry. It returns the number of imported templates.
func (s *Service) ImportSnapshot(ctx context.Context, r io.Reader, progress func(userID string)) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := ReadSnapshotHeader(r)
	if err != nil {
		return 0, err
	}

	imported := 0
	for i := 0; i < count; i++ {
		entry, err := ReadSnapshotEntry(r)
		if err != nil {
			return imported, err
		}
		id, err := NormalizeUserID(entry.UserID)
		if err != nil {
			return imported, fmt.Errorf("snapshot entry %d: %w", i, err)
		}
		if err := s.store.Upsert(ctx, id, entry.Template); err != nil {
			return imported, fmt.Errorf("could not store template for %q: %w", id, err)
		}
		imported++
		if progress != nil {
			progress(id)
		}
	}
	return imported, nil
}
