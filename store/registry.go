package store

import (
	"strings"
	"time"

	"github.com/PrayerWall/models"
)

type RegistryOptions struct {
	Clock  func() time.Time
	Images CategoryImages
	// SearchTitle includes the optional title in free-text search.
	SearchTitle bool
}

// Registry owns the set of prayer items. Newest submissions come first.
type Registry struct {
	clock       func() time.Time
	images      CategoryImages
	searchTitle bool
	comments    *CommentStore

	nextID int
	order  []int
	items  map[int]*models.PrayerItem
}

func NewRegistry(comments *CommentStore, opts RegistryOptions) *Registry {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Images.table == nil {
		opts.Images = DefaultCategoryImages()
	}
	return &Registry{
		clock:       opts.Clock,
		images:      opts.Images,
		searchTitle: opts.SearchTitle,
		comments:    comments,
		items:       make(map[int]*models.PrayerItem),
	}
}

// Comments returns the comment store linked to this registry.
func (r *Registry) Comments() *CommentStore {
	return r.comments
}

// CheckSubmit reports the error Submit would return, without mutating.
func (r *Registry) CheckSubmit(in models.PrayerItemCreate) error {
	_, err := normalizeSubmission(in)
	return err
}

func normalizeSubmission(in models.PrayerItemCreate) (models.PrayerItemCreate, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return in, models.NewValidationError("description", "is required")
	}
	in.Author_Name = strings.TrimSpace(in.Author_Name)
	if in.Author_Name == "" {
		return in, models.NewValidationError("authorName", "is required")
	}
	in.Categories = normalizeCategories(in.Categories)
	if len(in.Categories) == 0 {
		return in, models.NewValidationError("categories", "at least one category is required")
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			in.Title = nil
		} else {
			in.Title = &title
		}
	}
	return in, nil
}

// normalizeCategories trims tags, drops blanks and collapses duplicates while
// keeping first occurrence order.
func normalizeCategories(categories []string) []string {
	seen := make(map[string]bool, len(categories))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Submit creates a pending item at the front of the registry.
func (r *Registry) Submit(in models.PrayerItemCreate) (models.PrayerItem, error) {
	in, err := normalizeSubmission(in)
	if err != nil {
		return models.PrayerItem{}, err
	}

	images := append([]string{}, in.Images...)
	if len(images) == 0 {
		images = r.images.Defaults(in.Categories)
	}

	r.nextID++
	item := &models.PrayerItem{
		Prayer_Item_ID:    r.nextID,
		Title:             in.Title,
		Category:          in.Categories,
		Description:       in.Description,
		Author_Name:       in.Author_Name,
		Pray_Count:        0,
		Submitted_Date:    r.clock().Format(models.DateLayout),
		Images:            images,
		Moderation_Status: models.ModerationStatusPending,
	}

	r.items[item.Prayer_Item_ID] = item
	r.order = append([]int{item.Prayer_Item_ID}, r.order...)
	r.comments.Open(item.Prayer_Item_ID)

	return r.snapshot(item), nil
}

// IncrementPray bumps the item's pray count and returns the new value.
func (r *Registry) IncrementPray(id int) (int, error) {
	item, ok := r.items[id]
	if !ok {
		return 0, models.ErrNotFound
	}
	item.Pray_Count++
	return item.Pray_Count, nil
}

func (r *Registry) Get(id int) (models.PrayerItem, error) {
	item, ok := r.items[id]
	if !ok {
		return models.PrayerItem{}, models.ErrNotFound
	}
	return r.snapshot(item), nil
}

// Has reports whether id names an item.
func (r *Registry) Has(id int) bool {
	_, ok := r.items[id]
	return ok
}

// CommentCount is the number of root comments stored for the item.
func (r *Registry) CommentCount(id int) (int, error) {
	if _, ok := r.items[id]; !ok {
		return 0, models.ErrNotFound
	}
	return r.comments.RootCount(id)
}

// List returns the items matching every clause of filter, in registry order.
func (r *Registry) List(filter models.PrayerFilter) []models.PrayerItem {
	query := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]models.PrayerItem, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if filter.Owner_Only && !item.IsOwnedBy(filter.Current_User) {
			continue
		}
		if filter.Category != "" && !item.HasCategory(filter.Category) {
			continue
		}
		if query != "" && !r.matches(item, query) {
			continue
		}
		out = append(out, r.snapshot(item))
	}
	return out
}

func (r *Registry) matches(item *models.PrayerItem, query string) bool {
	if strings.Contains(strings.ToLower(item.Description), query) ||
		strings.Contains(strings.ToLower(item.Author_Name), query) ||
		strings.Contains(item.Submitted_Date, query) {
		return true
	}
	return r.searchTitle && item.Title != nil && strings.Contains(strings.ToLower(*item.Title), query)
}

// Categories returns every category used by an item, first use first.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, id := range r.order {
		for _, c := range r.items[id].Category {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// Len is the number of items held.
func (r *Registry) Len() int {
	return len(r.order)
}

func (r *Registry) snapshot(item *models.PrayerItem) models.PrayerItem {
	out := *item
	out.Category = append([]string{}, item.Category...)
	out.Images = append([]string{}, item.Images...)
	if item.Title != nil {
		title := *item.Title
		out.Title = &title
	}
	out.Comment_Count, _ = r.comments.RootCount(item.Prayer_Item_ID)
	return out
}

// Restore loads fixture items verbatim into an empty registry, keeping their ids,
// counts, dates and status. The first seed ends up first in registry order.
func (r *Registry) Restore(seeds []models.PrayerItemSeed) error {
	if len(r.items) > 0 {
		return models.ErrConflict
	}

	seen := make(map[int]bool, len(seeds))
	for _, seed := range seeds {
		if err := validateSeed(seed, seen); err != nil {
			return err
		}
	}

	for i := len(seeds) - 1; i >= 0; i-- {
		seed := seeds[i]
		status := seed.Moderation_Status
		if status == "" {
			status = models.ModerationStatusApproved
		}
		categories := normalizeCategories(seed.Category)
		images := append([]string{}, seed.Images...)
		if len(images) == 0 {
			images = r.images.Defaults(categories)
		}

		item := &models.PrayerItem{
			Prayer_Item_ID:    seed.Prayer_Item_ID,
			Title:             seed.Title,
			Category:          categories,
			Description:       strings.TrimSpace(seed.Description),
			Author_Name:       strings.TrimSpace(seed.Author_Name),
			Pray_Count:        seed.Pray_Count,
			Submitted_Date:    seed.Submitted_Date,
			Images:            images,
			Moderation_Status: status,
		}
		r.items[item.Prayer_Item_ID] = item
		r.order = append([]int{item.Prayer_Item_ID}, r.order...)
		if item.Prayer_Item_ID > r.nextID {
			r.nextID = item.Prayer_Item_ID
		}
		r.comments.restore(item.Prayer_Item_ID, seed.Comments)
	}
	return nil
}

func validateSeed(seed models.PrayerItemSeed, seen map[int]bool) error {
	if seed.Prayer_Item_ID <= 0 || seen[seed.Prayer_Item_ID] {
		return models.NewValidationError("id", "must be positive and unique")
	}
	seen[seed.Prayer_Item_ID] = true

	if _, err := normalizeSubmission(models.PrayerItemCreate{
		Description: seed.Description,
		Categories:  seed.Category,
		Author_Name: seed.Author_Name,
	}); err != nil {
		return err
	}
	if _, err := time.Parse(models.DateLayout, seed.Submitted_Date); err != nil {
		return models.NewValidationError("date", "must be formatted as YYYY-MM-DD")
	}
	if seed.Pray_Count < 0 {
		return models.NewValidationError("prayCount", "must not be negative")
	}
	switch seed.Moderation_Status {
	case "", models.ModerationStatusPending, models.ModerationStatusApproved:
	default:
		return models.NewValidationError("status", "must be pending or approved")
	}
	return validateCommentSeeds(seed.Comments)
}
