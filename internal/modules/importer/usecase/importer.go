package usecase

import (
	"context"

	"flipdeck/internal/modules/importer/dto"
	importerin "flipdeck/internal/modules/importer/port/in"
	"flipdeck/internal/modules/importer/service"
)

type Interactor struct {
	svc *service.ImporterService
}

func NewInteractor(svc *service.ImporterService) importerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Parse(ctx context.Context, input dto.ParseInput) (dto.ParseOutput, error) {
	return i.svc.Parse(ctx, input)
}
