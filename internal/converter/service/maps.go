package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"indoor-map/internal/converter/models"
	"indoor-map/internal/converter/repository"
	indoor "indoor-map/internal/indoor/models"
	"indoor-map/internal/indoor/lint"
	"indoor-map/internal/indoor/mapper"
	"indoor-map/internal/indoor/parser"
)

// ============================================================
// Map Service
// ============================================================

type MapService struct {
	repo       *repository.Repository
	storage    *FileStorage
	pxPerMeter float64
}

func NewMapService(repo *repository.Repository, storage *FileStorage, pxPerMeter float64) *MapService {
	return &MapService{repo: repo, storage: storage, pxPerMeter: pxPerMeter}
}

// Import validates the document, stores it and records its summary.
// Lint issues are returned but never reject the document.
func (s *MapService) Import(ctx context.Context, name string, data []byte) (*models.ImportResult, error) {
	collector := &parser.MapListener{}
	linter := lint.New()
	if err := parser.New().Read(bytes.NewReader(data), parser.MultiListener{collector, linter}); err != nil {
		return nil, err
	}

	doc := models.MapDocument{
		ID:     uuid.NewString(),
		Name:   name,
		Floors: len(collector.Map.Floors),
		Walls:  countWalls(collector.Map),
	}

	if err := s.storage.SaveFile(doc.ID, s.storage.SourcePath(doc.ID), data); err != nil {
		return nil, fmt.Errorf("save source: %w", err)
	}
	if err := s.repo.Create(ctx, &doc); err != nil {
		if rmErr := s.storage.Remove(doc.ID); rmErr != nil {
			log.Printf("[STORE] cleanup %s failed: %v", doc.ID, rmErr)
		}
		return nil, err
	}

	log.Printf("[MAPS] imported %s (%q): %d floors, %d walls, %d issues",
		doc.ID, name, doc.Floors, doc.Walls, len(linter.Issues))

	issues := linter.Issues
	if issues == nil {
		issues = []lint.Issue{}
	}
	return &models.ImportResult{Document: doc, Issues: issues}, nil
}

func (s *MapService) Get(ctx context.Context, id string) (*models.MapDocument, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MapService) List(ctx context.Context) ([]models.MapDocument, error) {
	return s.repo.List(ctx)
}

// Load parses the stored source of a map.
func (s *MapService) Load(ctx context.Context, id string) (*indoor.Map, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return parser.New().ReadMapFromFile(s.storage.SourcePath(id))
}

// Render converts a stored map, reusing a cached render when one exists.
// An empty floor renders every floor.
func (s *MapService) Render(ctx context.Context, id string, f mapper.Format, floor string) ([]byte, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	target := s.storage.RenderPath(id, floor, f.Ext())
	cached, ok, err := s.storage.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}
	if ok {
		log.Printf("[RENDER] cache hit %s", target)
		return cached, nil
	}

	src, err := os.Open(s.storage.SourcePath(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", parser.ErrSourceUnavailable, err)
	}
	defer src.Close()

	opts := mapper.Options{PixelsPerMeter: s.pxPerMeter}
	if floor != "" {
		opts.Floors = []string{floor}
	}
	out, err := mapper.Render(src, f, opts)
	if err != nil {
		return nil, err
	}

	if err := s.storage.SaveFile(id, target, out); err != nil {
		// The render is still valid; only the cache is lost.
		log.Printf("[STORE] cache write %s failed: %v", target, err)
	}
	log.Printf("[RENDER] %s as %s (floor=%q): %d bytes", id, f, floor, len(out))
	return out, nil
}

func (s *MapService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Remove(id); err != nil {
		return err
	}
	log.Printf("[MAPS] deleted %s", id)
	return nil
}

func (s *MapService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func countWalls(m *indoor.Map) int {
	n := 0
	for _, floor := range m.Floors {
		n += len(floor.Walls)
	}
	return n
}
