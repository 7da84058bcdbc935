package services

import (
	"errors"
	"log/slog"

	"github.com/PrayerWall/media"
	"github.com/PrayerWall/models"
	"github.com/PrayerWall/store"
)

// Metric label values
const (
	TargetPrayer  = "prayer"
	TargetComment = "comment"
)

type EngagementOptions struct {
	Registry  *store.Registry
	Validator *media.Validator
	Library   *media.Library
	Metrics   *MetricsService
	Logger    *slog.Logger
}

// EngagementService is the entry point for every engagement operation. It composes
// the media validator and library with the registry and comment store, and makes
// each submission all-or-nothing: either every part is stored or nothing is.
type EngagementService struct {
	locks     *lockManager
	registry  *store.Registry
	comments  *store.CommentStore
	validator *media.Validator
	library   *media.Library
	metrics   *MetricsService
	logger    *slog.Logger

	drafts map[string]*draft
}

func NewEngagementService(opts EngagementOptions) *EngagementService {
	if opts.Registry == nil {
		opts.Registry = store.NewRegistry(store.NewCommentStore(nil), store.RegistryOptions{})
	}
	if opts.Validator == nil {
		opts.Validator = media.NewValidator(media.Policy{})
	}
	if opts.Library == nil {
		opts.Library = media.NewLibrary()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &EngagementService{
		locks:     newLockManager(),
		registry:  opts.Registry,
		comments:  opts.Registry.Comments(),
		validator: opts.Validator,
		library:   opts.Library,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
		drafts:    make(map[string]*draft),
	}
}

// Media returns a stored attachment by reference.
func (s *EngagementService) Media(ref string) (media.Blob, bool) {
	return s.library.Get(ref)
}

// MediaPolicy returns the limits attachments are checked against.
func (s *EngagementService) MediaPolicy() media.Policy {
	return s.validator.Policy()
}

// Restore loads seed items into the empty registry.
func (s *EngagementService) Restore(seeds []models.PrayerItemSeed) error {
	return s.locks.execute(writeOperation, func() error {
		return s.registry.Restore(seeds)
	})
}

// SubmitPrayer creates a pending prayer item. Any refused image fails the whole
// submission with a MediaRejectedError listing every refusal.
func (s *EngagementService) SubmitPrayer(in models.PrayerItemCreate, files []media.File) (models.PrayerItem, error) {
	var item models.PrayerItem
	err := s.locks.execute(writeOperation, func() error {
		if err := s.registry.CheckSubmit(in); err != nil {
			return err
		}
		accepted, rejected := s.validator.ValidateImages(files, len(in.Images), true)
		if len(rejected) > 0 {
			return s.rejectMedia(rejected)
		}

		refs := s.store(accepted)
		in.Images = append(append([]string{}, in.Images...), refs...)

		var err error
		item, err = s.registry.Submit(in)
		if err != nil {
			s.library.Release(refs...)
			return err
		}
		return nil
	})
	if err != nil {
		return models.PrayerItem{}, err
	}

	s.metrics.Submitted(models.DraftKindPrayer)
	s.logger.Info("prayer item submitted", "prayer_id", item.Prayer_Item_ID, "author", item.Author_Name)
	return item, nil
}

// AddComment posts a root comment. images are uncapped; audio is optional.
func (s *EngagementService) AddComment(itemID int, in models.CommentCreate, images []media.File, audio *media.File) (models.Comment, error) {
	var comment models.Comment
	err := s.locks.execute(writeOperation, func() error {
		if err := s.comments.CheckComment(itemID, withPendingMedia(in, images, audio)); err != nil {
			return err
		}
		refs, err := s.storeCommentMedia(&in, images, audio)
		if err != nil {
			return err
		}
		comment, err = s.comments.AddComment(itemID, in)
		if err != nil {
			s.library.Release(refs...)
		}
		return err
	})
	if err != nil {
		return models.Comment{}, err
	}

	s.metrics.Submitted(models.DraftKindComment)
	s.logger.Info("comment added", "prayer_id", itemID, "comment_id", comment.Comment_ID)
	return comment, nil
}

// AddReply appends a reply under parentID, which may be a comment or a reply.
func (s *EngagementService) AddReply(itemID, parentID int, in models.CommentCreate, images []media.File, audio *media.File) (models.Comment, error) {
	var reply models.Comment
	err := s.locks.execute(writeOperation, func() error {
		if err := s.comments.CheckReply(itemID, parentID, withPendingMedia(in, images, audio)); err != nil {
			return err
		}
		refs, err := s.storeCommentMedia(&in, images, audio)
		if err != nil {
			return err
		}
		reply, err = s.comments.AddReply(itemID, parentID, in)
		if err != nil {
			s.library.Release(refs...)
		}
		return err
	})
	if err != nil {
		return models.Comment{}, err
	}

	s.metrics.Submitted(models.DraftKindReply)
	s.logger.Info("reply added", "prayer_id", itemID, "parent_id", parentID, "comment_id", reply.Comment_ID)
	return reply, nil
}

// withPendingMedia marks in as carrying media when files are about to be attached,
// so the emptiness rule can be checked before anything is stored.
func withPendingMedia(in models.CommentCreate, images []media.File, audio *media.File) models.CommentCreate {
	for _, f := range images {
		in.Images = append(in.Images, f.Name)
	}
	if audio != nil && in.Audio == nil {
		name := audio.Name
		in.Audio = &name
	}
	return in
}

// storeCommentMedia validates the attachments of a comment or reply and, when all
// of them pass, stores them and records their references on in.
func (s *EngagementService) storeCommentMedia(in *models.CommentCreate, images []media.File, audio *media.File) ([]string, error) {
	_, rejected := s.validator.ValidateImages(images, len(in.Images), false)
	if audio != nil {
		if err := s.validator.ValidateAudio(*audio); err != nil {
			var mediaErr *models.MediaRejectedError
			if !errors.As(err, &mediaErr) {
				return nil, err
			}
			rejected = append(rejected, mediaErr.Rejections...)
		}
	}
	if len(rejected) > 0 {
		return nil, s.rejectMedia(rejected)
	}

	refs := s.store(images)
	in.Images = append(append([]string{}, in.Images...), refs...)
	if audio != nil {
		ref := s.library.Put(*audio).Ref
		in.Audio = &ref
		refs = append(refs, ref)
	}
	return refs, nil
}

func (s *EngagementService) store(files []media.File) []string {
	refs := make([]string, 0, len(files))
	for _, f := range files {
		refs = append(refs, s.library.Put(f).Ref)
	}
	return refs
}

func (s *EngagementService) rejectMedia(rejected []models.MediaRejection) error {
	for _, r := range rejected {
		s.metrics.Rejected(r.Reason)
	}
	return &models.MediaRejectedError{Rejections: rejected}
}

// PrayForPrayer records one pray action on an item and returns the new count.
func (s *EngagementService) PrayForPrayer(itemID int) (int, error) {
	var count int
	err := s.locks.execute(writeOperation, func() error {
		var err error
		count, err = s.registry.IncrementPray(itemID)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.metrics.Prayed(TargetPrayer)
	return count, nil
}

// PrayForComment records one pray action on a comment or reply at any depth.
func (s *EngagementService) PrayForComment(itemID, commentID int) (int, error) {
	var count int
	err := s.locks.execute(writeOperation, func() error {
		var err error
		count, err = s.comments.IncrementPray(itemID, commentID)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.metrics.Prayed(TargetComment)
	return count, nil
}

func (s *EngagementService) ListPrayers(filter models.PrayerFilter) []models.PrayerItem {
	var items []models.PrayerItem
	_ = s.locks.execute(readOperation, func() error {
		items = s.registry.List(filter)
		return nil
	})
	return items
}

func (s *EngagementService) GetPrayer(itemID int) (models.PrayerItem, error) {
	var item models.PrayerItem
	err := s.locks.execute(readOperation, func() error {
		var err error
		item, err = s.registry.Get(itemID)
		return err
	})
	return item, err
}

// Comments returns the item's comment forest, newest root first.
func (s *EngagementService) Comments(itemID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.locks.execute(readOperation, func() error {
		var err error
		comments, err = s.comments.Comments(itemID)
		return err
	})
	return comments, err
}

func (s *EngagementService) CommentCount(itemID int) (int, error) {
	var count int
	err := s.locks.execute(readOperation, func() error {
		var err error
		count, err = s.registry.CommentCount(itemID)
		return err
	})
	return count, err
}

func (s *EngagementService) Categories() []string {
	var categories []string
	_ = s.locks.execute(readOperation, func() error {
		categories = s.registry.Categories()
		return nil
	})
	return categories
}
