package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"flipdeck/internal/modules/importer/domain"
	"flipdeck/internal/modules/importer/dto"
	importerout "flipdeck/internal/modules/importer/port/out"
)

type ImporterService struct {
	store importerout.ManifestStore
	host  importerout.Host
}

func NewImporterService(store importerout.ManifestStore, host importerout.Host) *ImporterService {
	return &ImporterService{store: store, host: host}
}

func (s *ImporterService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Formats: append([]string(nil), m.Formats...)})
	}
	return out, nil
}

func (s *ImporterService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if !result.BinaryReachable {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
			results = append(results, result)
			continue
		}
		result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		if !result.ChecksumValid {
			result.Error = "checksum mismatch"
			results = append(results, result)
			continue
		}
		if m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// Parse runs raw through the first enabled plugin declaring format.
func (s *ImporterService) Parse(ctx context.Context, input dto.ParseInput) (dto.ParseOutput, error) {
	req := domain.ParseRequest{Format: domain.NormalizeFormat(input.Format), Raw: input.Raw}
	if err := req.Validate(); err != nil {
		return dto.ParseOutput{}, err
	}
	manifest, err := s.manifestFor(ctx, req.Format)
	if err != nil {
		return dto.ParseOutput{}, err
	}
	if s.host == nil {
		return dto.ParseOutput{}, fmt.Errorf("importer host is not configured")
	}
	cards, err := s.host.Parse(ctx, manifest, req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return dto.ParseOutput{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, manifest.Name)
		}
		return dto.ParseOutput{}, err
	}
	out := dto.ParseOutput{Plugin: manifest.Name, Format: req.Format, Cards: make([]dto.Card, 0, len(cards))}
	for _, c := range cards {
		out.Cards = append(out.Cards, dto.Card{Front: c.Front, Back: c.Back})
	}
	return out, nil
}

func (s *ImporterService) manifestFor(ctx context.Context, format string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	disabled := ""
	for _, m := range manifests {
		if !m.Supports(format) {
			continue
		}
		if !m.Enabled {
			disabled = m.Name
			continue
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			return domain.Manifest{}, err
		}
		return m, nil
	}
	if disabled != "" {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginDisabled, disabled)
	}
	return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrFormatUnsupported, format)
}

func (s *ImporterService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
