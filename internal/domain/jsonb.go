package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

func jsonbValue(v any) (driver.Value, error) {
	return json.Marshal(v)
}

func jsonbScan(dst any, src any) error {
	if src == nil {
		return nil
	}
	switch b := src.(type) {
	case []byte:
		return json.Unmarshal(b, dst)
	case string:
		return json.Unmarshal([]byte(b), dst)
	default:
		return fmt.Errorf("scan jsonb: unsupported source type %T", src)
	}
}

// StringList is a jsonb-backed list of strings (bilingual list fields, image
// URL collections, categories).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return jsonbValue([]string(l))
}

func (l *StringList) Scan(src any) error { return jsonbScan(l, src) }

// MediaRef is a single main-media slot with its upload timestamp.
type MediaRef struct {
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func (m MediaRef) Value() (driver.Value, error) { return jsonbValue(m) }
func (m *MediaRef) Scan(src any) error          { return jsonbScan(m, src) }

// MediaItem is one entry of an additional-media collection with optional
// bilingual captions.
type MediaItem struct {
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
	CaptionAr  *string   `json:"caption_ar,omitempty"`
	CaptionEn  *string   `json:"caption_en,omitempty"`
}

type MediaList []MediaItem

func (l MediaList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return jsonbValue([]MediaItem(l))
}

func (l *MediaList) Scan(src any) error { return jsonbScan(l, src) }

// FileItem is one attached document with optional bilingual descriptions.
type FileItem struct {
	URL           string    `json:"url"`
	UploadedAt    time.Time `json:"uploaded_at"`
	DescriptionAr *string   `json:"description_ar,omitempty"`
	DescriptionEn *string   `json:"description_en,omitempty"`
}

type FileList []FileItem

func (l FileList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return jsonbValue([]FileItem(l))
}

func (l *FileList) Scan(src any) error { return jsonbScan(l, src) }

type Coordinates struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

type Location struct {
	NameAr      string      `json:"name_ar"`
	NameEn      string      `json:"name_en"`
	Coordinates Coordinates `json:"coordinates"`
}

type LocationList []Location

func (l LocationList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return jsonbValue([]Location(l))
}

func (l *LocationList) Scan(src any) error { return jsonbScan(l, src) }

type Budget struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (b Budget) Value() (driver.Value, error) { return jsonbValue(b) }
func (b *Budget) Scan(src any) error          { return jsonbScan(b, src) }

type Phase struct {
	NameAr    string `json:"name_ar"`
	NameEn    string `json:"name_en"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

type PhaseList []Phase

func (l PhaseList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return jsonbValue([]Phase(l))
}

func (l *PhaseList) Scan(src any) error { return jsonbScan(l, src) }

// Breakdown counts beneficiaries per demographic group.
type Breakdown struct {
	Total    int `json:"total"`
	Women    int `json:"women"`
	Men      int `json:"men"`
	Children int `json:"children"`
	Elderly  int `json:"elderly"`
	Disabled int `json:"disabled"`
}

func (b Breakdown) Value() (driver.Value, error) { return jsonbValue(b) }
func (b *Breakdown) Scan(src any) error          { return jsonbScan(b, src) }

// CaptionedMedia is a media slot with a single free-form caption.
type CaptionedMedia struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

func (m CaptionedMedia) Value() (driver.Value, error) { return jsonbValue(m) }
func (m *CaptionedMedia) Scan(src any) error          { return jsonbScan(m, src) }

type CaptionedList []CaptionedMedia

func (l CaptionedList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return jsonbValue([]CaptionedMedia(l))
}

func (l *CaptionedList) Scan(src any) error { return jsonbScan(l, src) }

// JSONMap holds loosely structured jsonb columns.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return jsonbValue(map[string]any(m))
}

func (m *JSONMap) Scan(src any) error { return jsonbScan(m, src) }
