package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/PrayerWall/media"
	"github.com/PrayerWall/models"
)

// recordingFileName labels clips captured through a draft's recorder.
const recordingFileName = "recording"

// draft is an in-progress submission. Its attachments already live in the media
// library; nothing reaches the registry or comment store until it is committed.
type draft struct {
	models.Draft
	recorder media.Recorder
}

func (d *draft) snapshot() models.Draft {
	out := d.Draft
	out.Images = append([]models.MediaRef{}, d.Images...)
	if d.Audio != nil {
		audio := *d.Audio
		out.Audio = &audio
	}
	out.Recording = d.recorder.Recording()
	return out
}

func (d *draft) imageRefs() []string {
	refs := make([]string, 0, len(d.Images))
	for _, img := range d.Images {
		refs = append(refs, img.Ref)
	}
	return refs
}

func (d *draft) audioRef() *string {
	if d.Audio == nil {
		return nil
	}
	ref := d.Audio.Ref
	return &ref
}

// lookupDraft finds a draft owned by author. Other users' drafts are reported as
// missing.
func (s *EngagementService) lookupDraft(author, draftID string) (*draft, error) {
	d, ok := s.drafts[draftID]
	if !ok || d.Author_Name != author {
		return nil, models.ErrNotFound
	}
	return d, nil
}

// NewDraft opens a draft for a prayer item, a comment on itemID or a reply to
// parentID. The target must exist when the draft is opened and again on commit.
func (s *EngagementService) NewDraft(author string, in models.DraftCreate) (models.Draft, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return models.Draft{}, models.NewValidationError("authorName", "is required")
	}

	var out models.Draft
	err := s.locks.execute(writeOperation, func() error {
		switch in.Kind {
		case models.DraftKindPrayer:
			in.Prayer_Item_ID, in.Parent_Comment_ID = 0, 0
		case models.DraftKindComment:
			if !s.registry.Has(in.Prayer_Item_ID) {
				return models.ErrNotFound
			}
			in.Parent_Comment_ID = 0
		case models.DraftKindReply:
			if !s.registry.Has(in.Prayer_Item_ID) {
				return models.ErrNotFound
			}
			if _, err := s.comments.Comment(in.Prayer_Item_ID, in.Parent_Comment_ID); err != nil {
				return models.ErrParentNotFound
			}
		default:
			return models.NewValidationError("kind", "must be prayer, comment or reply")
		}

		d := &draft{Draft: models.Draft{
			Draft_ID:          uuid.NewString(),
			Kind:              in.Kind,
			Author_Name:       author,
			Prayer_Item_ID:    in.Prayer_Item_ID,
			Parent_Comment_ID: in.Parent_Comment_ID,
			Images:            []models.MediaRef{},
		}}
		s.drafts[d.Draft_ID] = d
		out = d.snapshot()
		return nil
	})
	return out, err
}

func (s *EngagementService) GetDraft(author, draftID string) (models.Draft, error) {
	var out models.Draft
	err := s.locks.execute(readOperation, func() error {
		d, err := s.lookupDraft(author, draftID)
		if err != nil {
			return err
		}
		out = d.snapshot()
		return nil
	})
	return out, err
}

// AttachImages adds the acceptable files to the draft and reports a rejection for
// each refused one. Refused files leave existing attachments untouched. Prayer
// drafts are capped at the per-item image limit.
func (s *EngagementService) AttachImages(author, draftID string, files []media.File) (models.Draft, []models.MediaRejection, error) {
	var out models.Draft
	var rejected []models.MediaRejection
	err := s.locks.execute(writeOperation, func() error {
		d, err := s.lookupDraft(author, draftID)
		if err != nil {
			return err
		}

		var accepted []media.File
		capped := d.Kind == models.DraftKindPrayer
		accepted, rejected = s.validator.ValidateImages(files, len(d.Images), capped)
		for _, r := range rejected {
			s.metrics.Rejected(r.Reason)
		}
		for _, f := range accepted {
			d.Images = append(d.Images, s.library.Put(f))
		}
		out = d.snapshot()
		return nil
	})
	if rejected == nil {
		rejected = []models.MediaRejection{}
	}
	return out, rejected, err
}

// RemoveImage detaches the image at index, keeping the order of the rest.
func (s *EngagementService) RemoveImage(author, draftID string, index int) (models.Draft, error) {
	var out models.Draft
	err := s.locks.execute(writeOperation, func() error {
		d, err := s.lookupDraft(author, draftID)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(d.Images) {
			return models.NewValidationError("index", "no image at this position")
		}

		s.library.Release(d.Images[index].Ref)
		d.Images = append(d.Images[:index:index], d.Images[index+1:]...)
		out = d.snapshot()
		return nil
	})
	return out, err
}

// StartRecording requests the audio device for a comment or reply draft. ctx
// bounds how long the device request may take.
func (s *EngagementService) StartRecording(ctx context.Context, author, draftID string, device media.Device) (models.Draft, error) {
	var out models.Draft
	err := s.locks.execute(writeOperation, func() error {
		d, err := s.lookupDraft(author, draftID)
		if err != nil {
			return err
		}
		if d.Kind == models.DraftKindPrayer {
			return models.NewValidationError("audio", "prayer items do not carry voice notes")
		}
		if err := d.recorder.Start(ctx, device); err != nil {
			return err
		}
		out = d.snapshot()
		return nil
	})
	if err != nil {
		s.logger.Warn("recording not started", "draft_id", draftID, "error", err)
	}
	return out, err
}

// FeedRecording appends a chunk of audio captured by the client.
func (s *EngagementService) FeedRecording(author, draftID string, chunk []byte) error {
	return s.locks.execute(writeOperation, func() error {
		d, err := s.lookupDraft(author, draftID)
		if err != nil {
			return err
		}
		return d.recorder.Feed(chunk)
	})
}

// StopRecording finalizes the capture and attaches the clip, replacing any clip
// recorded or uploaded before.
func (s *EngagementService) StopRecording(author, draftID string) (models.Draft, error) {
	var out models.Draft
	err := s.locks.execute(writeOperation, func() error {
		d, err := s.lookupDraft(author, draftID)
		if err != nil {
			return err
		}
		clip, err := d.recorder.Stop()
		if err != nil {
			return err
		}

		file := media.File{Name: recordingFileName, MediaType: clip.MediaType, Data: clip.Data}
		if err := s.validator.ValidateAudio(file); err != nil {
			s.metrics.Rejected(models.MediaReasonInvalidFormat)
			return err
		}

		ref := s.library.Put(file)
		if d.Audio != nil {
			s.library.Release(d.Audio.Ref)
		}
		d.Audio = &ref
		out = d.snapshot()
		return nil
	})
	return out, err
}

// RemoveAudio detaches the voice note. Removing from a draft without one is a no-op.
func (s *EngagementService) RemoveAudio(author, draftID string) (models.Draft, error) {
	var out models.Draft
	err := s.locks.execute(writeOperation, func() error {
		d, err := s.lookupDraft(author, draftID)
		if err != nil {
			return err
		}
		if d.Audio != nil {
			s.library.Release(d.Audio.Ref)
			d.Audio = nil
		}
		out = d.snapshot()
		return nil
	})
	return out, err
}

// CommitDraft turns the draft into a prayer item, comment or reply. On success the
// draft is gone and its attachments belong to the new entity; on failure the
// draft is left exactly as it was.
func (s *EngagementService) CommitDraft(author, draftID string, in models.DraftCommit) (models.DraftResult, error) {
	var result models.DraftResult
	var kind string
	err := s.locks.execute(writeOperation, func() error {
		d, err := s.lookupDraft(author, draftID)
		if err != nil {
			return err
		}
		if d.recorder.Recording() {
			return media.ErrRecordingInProgress
		}

		kind = d.Kind
		switch d.Kind {
		case models.DraftKindPrayer:
			item, err := s.registry.Submit(models.PrayerItemCreate{
				Title:       in.Title,
				Description: in.Description,
				Categories:  in.Categories,
				Author_Name: d.Author_Name,
				Images:      d.imageRefs(),
			})
			if err != nil {
				return err
			}
			result.Prayer = &item
		case models.DraftKindComment:
			c, err := s.comments.AddComment(d.Prayer_Item_ID, d.commentCreate(in.Content))
			if err != nil {
				return err
			}
			result.Comment = &c
		case models.DraftKindReply:
			c, err := s.comments.AddReply(d.Prayer_Item_ID, d.Parent_Comment_ID, d.commentCreate(in.Content))
			if err != nil {
				return err
			}
			result.Comment = &c
		}

		delete(s.drafts, draftID)
		return nil
	})
	if err != nil {
		return models.DraftResult{}, err
	}

	s.metrics.Submitted(kind)
	s.logger.Info("draft committed", "draft_id", draftID, "kind", kind)
	return result, nil
}

func (d *draft) commentCreate(content string) models.CommentCreate {
	return models.CommentCreate{
		Author_Name: d.Author_Name,
		Content:     content,
		Images:      d.imageRefs(),
		Audio:       d.audioRef(),
	}
}

// DiscardDraft drops the draft, any capture in progress and every attachment it
// held.
func (s *EngagementService) DiscardDraft(author, draftID string) error {
	return s.locks.execute(writeOperation, func() error {
		d, err := s.lookupDraft(author, draftID)
		if err != nil {
			return err
		}
		if d.recorder.Recording() {
			_, _ = d.recorder.Stop()
		}
		refs := d.imageRefs()
		if d.Audio != nil {
			refs = append(refs, d.Audio.Ref)
		}
		s.library.Release(refs...)
		delete(s.drafts, draftID)
		return nil
	})
}

// DraftCount is the number of open drafts.
func (s *EngagementService) DraftCount() int {
	var n int
	_ = s.locks.execute(readOperation, func() error {
		n = len(s.drafts)
		return nil
	})
	return n
}
