// Package beats turns loosely shaped beat and license records into the
// canonical domain form used by every storefront component.
package beats

import (
	"regexp"
	"strings"
	"time"

	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/pkg/common"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

const (
	DefaultTitle       = "Beat personalizado"
	DefaultGenre       = "personalizado"
	DefaultCover       = "assets/img/beat1.webp"
	DefaultLicenseName = "Standard"
)

var (
	now   = time.Now
	newID = common.UUID

	fileSeparators = regexp.MustCompile(`[\n,]`)
)

type rawLicense struct {
	ID          string      `mapstructure:"id"`
	Name        string      `mapstructure:"name"`
	Price       interface{} `mapstructure:"price"`
	Files       interface{} `mapstructure:"files"`
	Package     string      `mapstructure:"package"`
	PackageName string      `mapstructure:"packageName"`
}

type rawBeat struct {
	ID          string      `mapstructure:"id"`
	Title       string      `mapstructure:"title"`
	Genre       string      `mapstructure:"genre"`
	Mood        string      `mapstructure:"mood"`
	Price       interface{} `mapstructure:"price"`
	License     string      `mapstructure:"license"`
	Licenses    interface{} `mapstructure:"licenses"`
	Files       interface{} `mapstructure:"files"`
	Cover       string      `mapstructure:"cover"`
	Offer       string      `mapstructure:"offer"`
	CreatedBy   string      `mapstructure:"createdBy"`
	ReleaseDate string      `mapstructure:"releaseDate"`
	Preview     string      `mapstructure:"preview"`
	PreviewType string      `mapstructure:"previewType"`
	PreviewName string      `mapstructure:"previewName"`
	Audio       string      `mapstructure:"audio"`
	AudioType   string      `mapstructure:"audioType"`
	AudioName   string      `mapstructure:"audioName"`
}

func decodeRaw(input map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// ParseFiles accepts a list or a newline/comma separated string and returns
// the trimmed, non-empty entries.
func ParseFiles(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return append([]string{}, v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, cast.ToString(item))
		}
		return out
	case string:
		out := make([]string, 0)
		for _, part := range fileSeparators.Split(v, -1) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return []string{}
	}
}

func validPrice(v interface{}) (float64, bool) {
	price, ok := common.ParseFloat(v)
	if !ok || price <= 0 {
		return 0, false
	}
	return common.Round2(price), true
}

// NormaliseLicense returns the canonical license for raw, or nil when no
// usable name or positive price can be resolved. When raw is not an object
// the license is synthesised from the fallback values.
func NormaliseLicense(raw interface{}, fallbackName string, fallbackPrice interface{}, fallbackFiles interface{}) *domain.License {
	m, isObject := raw.(map[string]interface{})
	if !isObject {
		if fallbackName == "" {
			return nil
		}
		price, ok := validPrice(fallbackPrice)
		if !ok {
			return nil
		}
		return &domain.License{
			ID:    strings.ToLower(fallbackName),
			Name:  fallbackName,
			Price: price,
			Files: ParseFiles(fallbackFiles),
		}
	}

	var rl rawLicense
	if err := decodeRaw(m, &rl); err != nil {
		return nil
	}
	name := rl.Name
	if name == "" {
		name = fallbackName
	}
	if name == "" {
		name = common.Capitalize(rl.ID)
	}
	price, ok := validPrice(rl.Price)
	if name == "" || !ok {
		return nil
	}
	id := rl.ID
	if id == "" {
		id = strings.ToLower(name)
	}
	return &domain.License{
		ID:          id,
		Name:        name,
		Price:       price,
		Files:       ParseFiles(rl.Files),
		Package:     rl.Package,
		PackageName: rl.PackageName,
	}
}

// NormaliseBeat returns the canonical beat for raw, or nil when raw is not
// an object. The first valid license becomes the default one and the top
// level price, license name and file manifest are derived from it.
func NormaliseBeat(raw interface{}) *domain.Beat {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	var rb rawBeat
	if err := decodeRaw(m, &rb); err != nil {
		return nil
	}

	baseFiles := ParseFiles(rb.Files)
	fallbackName := common.IfEmptyStr(rb.License, DefaultLicenseName)

	licenses := make([]domain.License, 0)
	if list, ok := rb.Licenses.([]interface{}); ok {
		for _, entry := range list {
			if l := NormaliseLicense(entry, fallbackName, rb.Price, baseFiles); l != nil {
				licenses = append(licenses, *l)
			}
		}
	}
	if len(licenses) == 0 {
		if l := NormaliseLicense(nil, fallbackName, rb.Price, baseFiles); l != nil {
			licenses = append(licenses, *l)
		}
	}

	beat := &domain.Beat{
		ID:          common.IfEmptyStr(rb.ID, newID()),
		Title:       common.IfEmptyStr(rb.Title, DefaultTitle),
		Genre:       common.IfEmptyStr(rb.Genre, DefaultGenre),
		License:     fallbackName,
		Licenses:    licenses,
		Files:       baseFiles,
		Cover:       common.IfEmptyStr(rb.Cover, DefaultCover),
		Offer:       rb.Offer,
		CreatedBy:   rb.CreatedBy,
		ReleaseDate: common.IfEmptyStr(rb.ReleaseDate, common.ISOTime(now())),
		Mood:        rb.Mood,
		Preview:     common.IfEmptyStr(rb.Preview, rb.Audio),
		PreviewType: common.IfEmptyStr(rb.PreviewType, rb.AudioType),
		PreviewName: common.IfEmptyStr(rb.PreviewName, rb.AudioName),
	}
	if beat.Mood == "" {
		beat.Mood = DefaultMood(rb.Genre)
	}
	if def := beat.DefaultLicense(); def != nil {
		beat.Price = def.Price
		beat.License = def.Name
		beat.Files = common.UniqueStrings(baseFiles, def.Files)
	} else {
		beat.Files = common.UniqueStrings(baseFiles)
	}
	beat.Audio = beat.Preview
	beat.AudioType = beat.PreviewType
	return beat
}

// DefaultMood is the subtitle of a beat without a description.
func DefaultMood(genre string) string {
	return common.Capitalize(common.IfEmptyStr(genre, DefaultGenre)) + " · Beat personalizado"
}

// DecodeCustomBeats reads a stored beat collection, normalising every entry
// and dropping the ones that are not objects.
func DecodeCustomBeats(list []interface{}) []domain.Beat {
	out := make([]domain.Beat, 0, len(list))
	for _, entry := range list {
		if b := NormaliseBeat(entry); b != nil {
			out = append(out, *b)
		}
	}
	return out
}
