package store

// Default image paths, served from the static directory.
const (
	DefaultFallbackImage = "/static/default.jpg"
)

// DefaultCategoryImageTable maps the standard categories to their cover images.
// 心理支持 intentionally shares the generic fallback.
var DefaultCategoryImageTable = map[string]string{
	"病人醫治": "/static/cover_patient.jpg",
	"心理支持": DefaultFallbackImage,
	"兒童病患": "/static/cover_kid.jpg",
	"癌症病患": "/static/cover_cancer.jpg",
	"家庭關係": "/static/cover_family.jpg",
	"長期照護": "/static/cover_care.jpg",
}

// CategoryImages picks the image substituted when an item is submitted without any.
type CategoryImages struct {
	table    map[string]string
	fallback string
}

func NewCategoryImages(table map[string]string, fallback string) CategoryImages {
	if fallback == "" {
		fallback = DefaultFallbackImage
	}
	copied := make(map[string]string, len(table))
	for k, v := range table {
		copied[k] = v
	}
	return CategoryImages{table: copied, fallback: fallback}
}

func DefaultCategoryImages() CategoryImages {
	return NewCategoryImages(DefaultCategoryImageTable, DefaultFallbackImage)
}

// For returns the image for category, or the fallback when it is unmapped.
func (c CategoryImages) For(category string) string {
	if img, ok := c.table[category]; ok && img != "" {
		return img
	}
	if c.fallback == "" {
		return DefaultFallbackImage
	}
	return c.fallback
}

// Defaults returns the default image list for an item in the given categories.
func (c CategoryImages) Defaults(categories []string) []string {
	if len(categories) == 0 {
		return []string{c.For("")}
	}
	return []string{c.For(categories[0])}
}
