package service

import (
	"context"
	"testing"

	"github.com/haierkeys/collab-note-service/internal/domain"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeNoteRepository 内存版 NoteRepository
type fakeNoteRepository struct {
	notes map[string]*domain.Note
}

func newFakeNoteRepository() *fakeNoteRepository {
	return &fakeNoteRepository{notes: make(map[string]*domain.Note)}
}

func (r *fakeNoteRepository) GetByNoteID(ctx context.Context, uid int64, noteID string) (*domain.Note, error) {
	if n, ok := r.notes[noteID]; ok && n.UID == uid {
		clone := *n
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNoteRepository) Upsert(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	r.notes[note.NoteID] = note
	clone := *note
	return &clone, nil
}

func (r *fakeNoteRepository) ListDirty(ctx context.Context) ([]*domain.Note, error) {
	dirty := make([]*domain.Note, 0)
	for _, n := range r.notes {
		if n.IsDirty() {
			clone := *n
			dirty = append(dirty, &clone)
		}
	}
	return dirty, nil
}

func (r *fakeNoteRepository) UpdateSnapshot(ctx context.Context, uid int64, noteID string, snapshotHash string) error {
	if n, ok := r.notes[noteID]; ok {
		n.SnapshotHash = snapshotHash
	}
	return nil
}

func (r *fakeNoteRepository) Delete(ctx context.Context, uid int64, noteID string) error {
	delete(r.notes, noteID)
	return nil
}

var _ domain.NoteRepository = (*fakeNoteRepository)(nil)

// fakeRevisionRepository 内存版 RevisionRepository
type fakeRevisionRepository struct {
	revisions []*domain.Revision
}

func (r *fakeRevisionRepository) Create(ctx context.Context, revision *domain.Revision) (int64, error) {
	revision.ID = int64(len(r.revisions) + 1)
	r.revisions = append(r.revisions, revision)
	return revision.ID, nil
}

func (r *fakeRevisionRepository) GetLatest(ctx context.Context, uid int64, noteID string) (*domain.Revision, error) {
	for i := len(r.revisions) - 1; i >= 0; i-- {
		if r.revisions[i].UID == uid && r.revisions[i].NoteID == noteID {
			clone := *r.revisions[i]
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRevisionRepository) ListByNote(ctx context.Context, uid int64, noteID string, limit int) ([]*domain.Revision, error) {
	list := make([]*domain.Revision, 0)
	for i := len(r.revisions) - 1; i >= 0 && len(list) < limit; i-- {
		if r.revisions[i].UID == uid && r.revisions[i].NoteID == noteID {
			clone := *r.revisions[i]
			list = append(list, &clone)
		}
	}
	return list, nil
}

var _ domain.RevisionRepository = (*fakeRevisionRepository)(nil)

func TestSaveAllDirtyNotesEmpty(t *testing.T) {
	noteRepo := newFakeNoteRepository()
	revRepo := &fakeRevisionRepository{}
	svc := NewRevisionService(noteRepo, revRepo, zap.NewNop())

	saved, err := svc.SaveAllDirtyNotes(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 0, saved)
}

func TestSaveAllDirtyNotes(t *testing.T) {
	noteRepo := newFakeNoteRepository()
	noteRepo.notes["n1"] = &domain.Note{
		UID: 1, NoteID: "n1", Content: "hello world",
		ContentHash: "h1", SnapshotHash: "",
	}
	noteRepo.notes["n2"] = &domain.Note{
		UID: 1, NoteID: "n2", Content: "unchanged",
		ContentHash: "same", SnapshotHash: "same",
	}
	revRepo := &fakeRevisionRepository{}
	svc := NewRevisionService(noteRepo, revRepo, zap.NewNop())

	saved, err := svc.SaveAllDirtyNotes(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, saved)
	assert.Len(t, revRepo.revisions, 1)
	assert.Equal(t, "n1", revRepo.revisions[0].NoteID)
	assert.Equal(t, "hello world", revRepo.revisions[0].Content)

	// 快照推进后不再视为有变化
	assert.Equal(t, "h1", noteRepo.notes["n1"].SnapshotHash)
	saved, err = svc.SaveAllDirtyNotes(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 0, saved)
}

// 修订版本的补丁可以从上一版本内容还原出当前内容
func TestSaveRevisionPatchApplies(t *testing.T) {
	noteRepo := newFakeNoteRepository()
	noteRepo.notes["n1"] = &domain.Note{
		UID: 1, NoteID: "n1", Content: "first version",
		ContentHash: "h1",
	}
	revRepo := &fakeRevisionRepository{}
	svc := NewRevisionService(noteRepo, revRepo, zap.NewNop())

	_, err := svc.SaveAllDirtyNotes(context.Background())
	assert.Nil(t, err)

	// 第二个版本
	noteRepo.notes["n1"].Content = "second version with more text"
	noteRepo.notes["n1"].ContentHash = "h2"

	_, err = svc.SaveAllDirtyNotes(context.Background())
	assert.Nil(t, err)
	assert.Len(t, revRepo.revisions, 2)

	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(revRepo.revisions[1].Patch)
	assert.Nil(t, err)

	restored, applied := dmp.PatchApply(patches, "first version")
	for _, ok := range applied {
		assert.True(t, ok)
	}
	assert.Equal(t, "second version with more text", restored)
}
