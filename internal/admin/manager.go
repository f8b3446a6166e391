package admin

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dame6k/beatstore/internal/beats"
	"github.com/dame6k/beatstore/internal/domain"
	"github.com/dame6k/beatstore/internal/events"
	"github.com/dame6k/beatstore/internal/store"
	"github.com/dame6k/beatstore/pkg/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultPreviewType = "audio/mpeg"

var (
	ErrForbidden            = errors.New("admin: admin role required")
	ErrNoLicense            = errors.New("admin: no license enabled")
	ErrInvalidLicensePrice  = errors.New("admin: invalid license price")
	ErrMissingPackage       = errors.New("admin: license package missing")
	ErrUnprocessablePackage = errors.New("admin: license package unreadable")
	ErrMissingField         = errors.New("admin: required field missing")
	ErrUnreadableFile       = errors.New("admin: upload unreadable")
	ErrSaveFailed           = errors.New("admin: beat not saved")
	ErrUnknownBeat          = errors.New("admin: unknown beat")
)

var whitespace = regexp.MustCompile(`\s+`)

// LicenseError reports which license of the form failed validation.
type LicenseError struct {
	License string
	Err     error
}

func (e *LicenseError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Err, e.License)
}

func (e *LicenseError) Unwrap() error {
	return e.Err
}

// LicenseInput is one license block of the upload form.
type LicenseInput struct {
	Key     string
	Name    string
	Enabled bool
	Price   string
	Files   string
	Package *Upload
}

// BeatForm is the admin upload form.
type BeatForm struct {
	Title    string
	Genre    string
	Offer    string
	Files    string
	Cover    *Upload
	Preview  *Upload
	Licenses []LicenseInput
}

// SessionSource exposes the logged in user.
type SessionSource interface {
	Current() *domain.Session
}

// Manager owns the custom beat collection of one profile.
type Manager struct {
	beats     *store.Repository[[]domain.Beat]
	session   SessionSource
	bus       *events.Bus
	maxUpload int64
	now       func() time.Time

	// saving serialises appends to the custom-beats key.
	saving sync.Mutex

	mu     sync.RWMutex
	view   CustomBeatsView
	cancel func()
}

type Option func(*Manager)

func WithMaxUpload(n int64) Option {
	return func(m *Manager) { m.maxUpload = n }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(s store.Store, origin string, session SessionSource, bus *events.Bus, opts ...Option) *Manager {
	m := &Manager{
		beats:     beats.NewRepository(s, origin),
		session:   session,
		bus:       bus,
		maxUpload: 32 << 20,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init renders the stored beats and re-renders, without notifying, when
// another page changes them.
func (m *Manager) Init() {
	m.RenderCustomBeats(true)
	m.cancel = m.beats.Subscribe(func() {
		m.RenderCustomBeats(false)
	})
}

func (m *Manager) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// CreateBeat validates the form, embeds its files and appends the beat to
// the custom collection.
func (m *Manager) CreateBeat(ctx context.Context, form BeatForm) (*domain.Beat, error) {
	sess := m.session.Current()
	if !sess.IsAdmin() {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(form.Title)
	genre := strings.TrimSpace(form.Genre)
	offer := strings.TrimSpace(form.Offer)
	descFiles := beats.ParseFiles(form.Files)

	licenses := make([]domain.License, 0, len(form.Licenses))
	for _, in := range form.Licenses {
		if !in.Enabled {
			continue
		}
		license, err := m.readLicense(ctx, in)
		if err != nil {
			return nil, err
		}
		licenses = append(licenses, *license)
	}
	if len(licenses) == 0 {
		return nil, ErrNoLicense
	}
	if title == "" || genre == "" || form.Cover == nil || form.Preview == nil {
		return nil, ErrMissingField
	}

	var cover, preview string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		cover, err = readDataURL(gctx, form.Cover, m.maxUpload)
		return err
	})
	g.Go(func() (err error) {
		preview, err = readDataURL(gctx, form.Preview, m.maxUpload)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	def := licenses[0]
	previewType := form.Preview.MediaType(DefaultPreviewType)
	mood := beats.DefaultMood(genre)
	if len(descFiles) > 0 {
		mood = common.Capitalize(genre) + " · " + strings.Join(descFiles, ", ")
	}
	beat := domain.Beat{
		ID:          common.UUID(),
		Title:       title,
		Genre:       genre,
		Mood:        mood,
		Price:       def.Price,
		License:     def.Name,
		Licenses:    licenses,
		Files:       common.UniqueStrings(descFiles, def.Files),
		Cover:       cover,
		Offer:       offer,
		CreatedBy:   sess.Email,
		ReleaseDate: common.ISOTime(m.now()),
		Preview:     preview,
		PreviewType: previewType,
		PreviewName: form.Preview.Name,
		Audio:       preview,
		AudioType:   previewType,
	}

	m.saving.Lock()
	err := m.beats.Set(append(m.beats.Get(), beat))
	m.saving.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	zap.L().Info("custom beat saved",
		zap.String("namespace", "admin"),
		zap.String("id", beat.ID),
		zap.String("title", beat.Title),
		zap.Int("licenses", len(licenses)),
		zap.String("by", sess.Email))

	m.RenderCustomBeats(true)
	return &beat, nil
}

func (m *Manager) readLicense(ctx context.Context, in LicenseInput) (*domain.License, error) {
	name := in.Name
	if name == "" {
		name = common.Capitalize(in.Key)
	}
	price, ok := common.ParseFloat(in.Price)
	if !ok || price <= 0 {
		return nil, &LicenseError{License: name, Err: ErrInvalidLicensePrice}
	}
	if in.Package == nil {
		return nil, &LicenseError{License: name, Err: ErrMissingPackage}
	}
	pkg, err := readDataURL(ctx, in.Package, m.maxUpload)
	if err != nil {
		zap.L().Warn("license package unreadable",
			zap.String("namespace", "admin"),
			zap.String("license", name),
			zap.Error(err))
		return nil, &LicenseError{License: name, Err: ErrUnprocessablePackage}
	}
	id := in.Key
	if id == "" {
		id = whitespace.ReplaceAllString(strings.ToLower(name), "-")
	}
	return &domain.License{
		ID:          id,
		Name:        name,
		Price:       common.Round2(price),
		Files:       beats.ParseFiles(in.Files),
		Package:     pkg,
		PackageName: in.Package.Name,
	}, nil
}
