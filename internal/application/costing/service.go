package costing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baogia/backend/internal/domain/costing"
	"github.com/baogia/backend/internal/domain/shared"
)

// Service handles costing sheets, the materials library and costing
// templates for one owner.
type Service struct {
	sheets    costing.SheetRepository
	materials costing.MaterialRepository
	templates costing.TemplateRepository
	logger    *zap.Logger
}

// NewService creates a new costing Service
func NewService(
	sheets costing.SheetRepository,
	materials costing.MaterialRepository,
	templates costing.TemplateRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sheets:    sheets,
		materials: materials,
		templates: templates,
		logger:    logger,
	}
}

// CreateSheet creates a costing sheet
func (s *Service) CreateSheet(ctx context.Context, ownerID uuid.UUID, req CreateSheetRequest) (*SheetResponse, error) {
	sheet, err := costing.NewSheet(ownerID, req.ProductName)
	if err != nil {
		return nil, err
	}
	sheet.ProductLengthMM = req.ProductLengthMM
	sheet.ProductWidthMM = req.ProductWidthMM
	sheet.ProductHeightMM = req.ProductHeightMM
	if req.QuantityProduced != nil {
		if err := sheet.SetQuantityProduced(*req.QuantityProduced); err != nil {
			return nil, err
		}
	}

	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to save costing sheet: %w", err)
	}

	s.logger.Info("costing sheet created",
		zap.String("sheet_id", sheet.ID.String()),
		zap.String("product_name", sheet.ProductName))

	return toSheetResponse(sheet), nil
}

// GetSheet returns one costing sheet with its computed breakdown
func (s *Service) GetSheet(ctx context.Context, ownerID, sheetID uuid.UUID) (*SheetResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}
	return toSheetResponse(sheet), nil
}

// ListSheets returns the owner's costing sheets
func (s *Service) ListSheets(ctx context.Context, ownerID uuid.UUID, req ListSheetsRequest) (*ListSheetsResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Search != "" {
		filter.Search = shared.Fold(req.Search)
	}
	filter.OrderBy = "updated_at"
	filter.OrderDir = "desc"

	sheets, err := s.sheets.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list costing sheets: %w", err)
	}
	total, err := s.sheets.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count costing sheets: %w", err)
	}

	items := make([]SheetSummaryResponse, 0, len(sheets))
	for idx := range sheets {
		items = append(items, toSheetSummaryResponse(&sheets[idx]))
	}
	return &ListSheetsResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// UpdateSheet updates the sheet's header fields
func (s *Service) UpdateSheet(ctx context.Context, ownerID, sheetID uuid.UUID, req UpdateSheetRequest) (*SheetResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}

	if err := sheet.Rename(req.ProductName); err != nil {
		return nil, err
	}
	sheet.ProductLengthMM = req.ProductLengthMM
	sheet.ProductWidthMM = req.ProductWidthMM
	sheet.ProductHeightMM = req.ProductHeightMM
	if req.QuantityProduced != nil {
		if err := sheet.SetQuantityProduced(*req.QuantityProduced); err != nil {
			return nil, err
		}
	}

	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to save costing sheet: %w", err)
	}
	return toSheetResponse(sheet), nil
}

// DeleteSheet removes a costing sheet
func (s *Service) DeleteSheet(ctx context.Context, ownerID, sheetID uuid.UUID) error {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return err
	}
	if err := s.sheets.Delete(ctx, sheet.ID); err != nil {
		return fmt.Errorf("failed to delete costing sheet: %w", err)
	}
	return nil
}

// SetOverheads sets the sheet's flat overhead amounts
func (s *Service) SetOverheads(ctx context.Context, ownerID, sheetID uuid.UUID, req SetOverheadsRequest) (*SheetResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}
	if err := sheet.SetOverheads(req.Overhead, req.Management, req.SalesMarketing); err != nil {
		return nil, err
	}
	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to save costing sheet: %w", err)
	}
	return toSheetResponse(sheet), nil
}

// AddMaterialLine adds a material line to the sheet
func (s *Service) AddMaterialLine(ctx context.Context, ownerID, sheetID uuid.UUID, req MaterialLineRequest) (*SheetResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}

	line, err := materialLineFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := sheet.AddMaterial(*line); err != nil {
		return nil, err
	}

	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to save costing sheet: %w", err)
	}
	return toSheetResponse(sheet), nil
}

// AddMaterialFromLibrary copies a library material onto the sheet
func (s *Service) AddMaterialFromLibrary(ctx context.Context, ownerID, sheetID uuid.UUID, req AddMaterialFromLibraryRequest) (*SheetResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}

	material, err := s.materials.FindByIDForOwner(ctx, ownerID, req.MaterialID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Material not found")
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}

	if err := sheet.AddMaterial(material.ToLine(req.Quantity)); err != nil {
		return nil, err
	}
	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to save costing sheet: %w", err)
	}
	return toSheetResponse(sheet), nil
}

// RemoveMaterialLine deletes a material line from the sheet
func (s *Service) RemoveMaterialLine(ctx context.Context, ownerID, sheetID, lineID uuid.UUID) (*SheetResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}
	if err := sheet.RemoveMaterial(lineID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Material line not found")
		}
		return nil, err
	}
	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to save costing sheet: %w", err)
	}
	return toSheetResponse(sheet), nil
}

// AddLaborLine adds a labor step to the sheet
func (s *Service) AddLaborLine(ctx context.Context, ownerID, sheetID uuid.UUID, req LaborLineRequest) (*SheetResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}
	if err := sheet.AddLabor(costing.LaborLine{
		Name:  req.Name,
		Hours: req.Hours,
		Rate:  req.Rate,
	}); err != nil {
		return nil, err
	}
	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to save costing sheet: %w", err)
	}
	return toSheetResponse(sheet), nil
}

// RemoveLaborLine deletes a labor step from the sheet
func (s *Service) RemoveLaborLine(ctx context.Context, ownerID, sheetID, lineID uuid.UUID) (*SheetResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}
	if err := sheet.RemoveLabor(lineID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Labor line not found")
		}
		return nil, err
	}
	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to save costing sheet: %w", err)
	}
	return toSheetResponse(sheet), nil
}

// AddOtherCostLine adds a flat cost to the sheet
func (s *Service) AddOtherCostLine(ctx context.Context, ownerID, sheetID uuid.UUID, req OtherCostLineRequest) (*SheetResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}
	if err := sheet.AddOtherCost(costing.OtherCostLine{
		Name:   req.Name,
		Amount: req.Amount,
	}); err != nil {
		return nil, err
	}
	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to save costing sheet: %w", err)
	}
	return toSheetResponse(sheet), nil
}

// RemoveOtherCostLine deletes a flat cost from the sheet
func (s *Service) RemoveOtherCostLine(ctx context.Context, ownerID, sheetID, lineID uuid.UUID) (*SheetResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}
	if err := sheet.RemoveOtherCost(lineID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Cost line not found")
		}
		return nil, err
	}
	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to save costing sheet: %w", err)
	}
	return toSheetResponse(sheet), nil
}

// Calculate returns the sheet's cost breakdown without modifying it
func (s *Service) Calculate(ctx context.Context, ownerID, sheetID uuid.UUID) (*BreakdownResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}
	breakdown := toBreakdownResponse(sheet.Calculate())
	return &breakdown, nil
}

// WhatIf evaluates a cost-change scenario against the sheet
func (s *Service) WhatIf(ctx context.Context, ownerID, sheetID uuid.UUID, req WhatIfRequest) (*WhatIfResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}
	result := sheet.WhatIf(costing.WhatIfDeltas{
		MaterialsPercent:      req.MaterialsPercent,
		LaborPercent:          req.LaborPercent,
		OverheadPercent:       req.OverheadPercent,
		ManagementPercent:     req.ManagementPercent,
		SalesMarketingPercent: req.SalesMarketingPercent,
	})
	return &WhatIfResponse{
		MaterialsPercent:      result.Deltas.MaterialsPercent,
		LaborPercent:          result.Deltas.LaborPercent,
		OverheadPercent:       result.Deltas.OverheadPercent,
		ManagementPercent:     result.Deltas.ManagementPercent,
		SalesMarketingPercent: result.Deltas.SalesMarketingPercent,
		OriginalUnitCost:      result.OriginalUnitCost,
		ScenarioUnitCost:      result.ScenarioUnitCost,
		OriginalTotalCost:     result.OriginalTotalCost,
		ScenarioTotalCost:     result.ScenarioTotalCost,
		Difference:            result.Difference,
	}, nil
}

// DuplicateSheet copies a sheet under a "(Copy)" name
func (s *Service) DuplicateSheet(ctx context.Context, ownerID, sheetID uuid.UUID) (*SheetResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}
	dup := sheet.Duplicate()
	if err := s.sheets.Save(ctx, dup); err != nil {
		return nil, fmt.Errorf("failed to save costing sheet: %w", err)
	}
	return toSheetResponse(dup), nil
}

// SaveMaterial upserts a library material. An existing material with the
// same folded name gets its unit and price overwritten.
func (s *Service) SaveMaterial(ctx context.Context, ownerID uuid.UUID, req SaveMaterialRequest) (*MaterialResponse, error) {
	existing, err := s.materials.FindByFoldedName(ctx, ownerID, shared.Fold(req.Name))
	switch {
	case err == nil:
		if err := existing.UpdatePricing(req.Spec, req.Dimensions, req.Unit, req.Price); err != nil {
			return nil, err
		}
		if err := s.materials.Save(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to save material: %w", err)
		}
		return toMaterialResponse(existing), nil
	case errors.Is(err, shared.ErrNotFound):
		material, err := costing.NewMaterial(ownerID, req.Name, req.Spec, req.Dimensions, req.Unit, req.Price)
		if err != nil {
			return nil, err
		}
		if err := s.materials.Save(ctx, material); err != nil {
			return nil, fmt.Errorf("failed to save material: %w", err)
		}
		return toMaterialResponse(material), nil
	default:
		return nil, fmt.Errorf("failed to look up material: %w", err)
	}
}

// ListMaterials returns the owner's material library
func (s *Service) ListMaterials(ctx context.Context, ownerID uuid.UUID, req ListMaterialsRequest) (*ListMaterialsResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Search != "" {
		filter.Search = shared.Fold(req.Search)
	}
	filter.OrderBy = "folded_name"
	filter.OrderDir = "asc"

	materials, err := s.materials.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	total, err := s.materials.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count materials: %w", err)
	}

	items := make([]MaterialResponse, 0, len(materials))
	for idx := range materials {
		items = append(items, *toMaterialResponse(&materials[idx]))
	}
	return &ListMaterialsResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// DeleteMaterial removes a library material
func (s *Service) DeleteMaterial(ctx context.Context, ownerID, materialID uuid.UUID) error {
	material, err := s.materials.FindByIDForOwner(ctx, ownerID, materialID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Material not found")
		}
		return fmt.Errorf("failed to get material: %w", err)
	}
	if err := s.materials.Delete(ctx, material.ID); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}

// SaveTemplate captures a sheet as a reusable costing template
func (s *Service) SaveTemplate(ctx context.Context, ownerID, sheetID uuid.UUID, req SaveTemplateRequest) (*TemplateResponse, error) {
	sheet, err := s.findSheet(ctx, ownerID, sheetID)
	if err != nil {
		return nil, err
	}
	tpl, err := costing.NewTemplate(ownerID, req.Name, sheet)
	if err != nil {
		return nil, err
	}
	if err := s.templates.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to save costing template: %w", err)
	}
	return toTemplateResponse(tpl), nil
}

// ListTemplates returns the owner's costing templates
func (s *Service) ListTemplates(ctx context.Context, ownerID uuid.UUID) ([]TemplateResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 200
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	templates, err := s.templates.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list costing templates: %w", err)
	}
	responses := make([]TemplateResponse, 0, len(templates))
	for idx := range templates {
		responses = append(responses, *toTemplateResponse(&templates[idx]))
	}
	return responses, nil
}

// ApplyTemplate instantiates a template as a new costing sheet
func (s *Service) ApplyTemplate(ctx context.Context, ownerID, templateID uuid.UUID, req ApplyTemplateRequest) (*SheetResponse, error) {
	tpl, err := s.templates.FindByIDForOwner(ctx, ownerID, templateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Costing template not found")
		}
		return nil, fmt.Errorf("failed to get costing template: %w", err)
	}

	sheet, err := tpl.Apply(req.ProductName)
	if err != nil {
		return nil, err
	}
	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, fmt.Errorf("failed to save costing sheet: %w", err)
	}
	return toSheetResponse(sheet), nil
}

// DeleteTemplate removes a costing template
func (s *Service) DeleteTemplate(ctx context.Context, ownerID, templateID uuid.UUID) error {
	tpl, err := s.templates.FindByIDForOwner(ctx, ownerID, templateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Costing template not found")
		}
		return fmt.Errorf("failed to get costing template: %w", err)
	}
	if err := s.templates.Delete(ctx, tpl.ID); err != nil {
		return fmt.Errorf("failed to delete costing template: %w", err)
	}
	return nil
}

func (s *Service) findSheet(ctx context.Context, ownerID, sheetID uuid.UUID) (*costing.Sheet, error) {
	sheet, err := s.sheets.FindByIDForOwner(ctx, ownerID, sheetID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Costing sheet not found")
		}
		return nil, fmt.Errorf("failed to get costing sheet: %w", err)
	}
	return sheet, nil
}

func materialLineFromRequest(req MaterialLineRequest) (*costing.MaterialLine, error) {
	linkType := costing.LinkNone
	if req.LinkType != "" {
		parsed, err := costing.ParseLinkType(req.LinkType)
		if err != nil {
			return nil, err
		}
		linkType = parsed
	}
	line := &costing.MaterialLine{
		Name:         req.Name,
		Spec:         req.Spec,
		Dimensions:   req.Dimensions,
		Unit:         req.Unit,
		QuantityUsed: req.QuantityUsed,
		Price:        req.Price,
		WastePercent: req.WastePercent,
		LinkType:     linkType,
	}
	if err := line.Validate(); err != nil {
		return nil, err
	}
	return line, nil
}

func toSheetResponse(sheet *costing.Sheet) *SheetResponse {
	materials := make([]MaterialLineResponse, 0, len(sheet.Materials))
	for idx := range sheet.Materials {
		line := &sheet.Materials[idx]
		materials = append(materials, MaterialLineResponse{
			ID:                line.ID.String(),
			Name:              line.Name,
			Spec:              line.Spec,
			Dimensions:        line.Dimensions,
			Unit:              line.Unit,
			QuantityUsed:      line.QuantityUsed,
			EffectiveQuantity: line.EffectiveQuantity(sheet.ProductLengthMM, sheet.ProductWidthMM, sheet.ProductHeightMM),
			Price:             line.Price,
			WastePercent:      line.WastePercent,
			LinkType:          string(line.LinkType),
			Total:             line.Total(sheet.ProductLengthMM, sheet.ProductWidthMM, sheet.ProductHeightMM),
			SortOrder:         line.SortOrder,
		})
	}

	labor := make([]LaborLineResponse, 0, len(sheet.Labor))
	for idx := range sheet.Labor {
		line := &sheet.Labor[idx]
		labor = append(labor, LaborLineResponse{
			ID:        line.ID.String(),
			Name:      line.Name,
			Hours:     line.Hours,
			Rate:      line.Rate,
			Total:     line.Total(),
			SortOrder: line.SortOrder,
		})
	}

	otherCosts := make([]OtherCostLineResponse, 0, len(sheet.OtherCosts))
	for idx := range sheet.OtherCosts {
		line := &sheet.OtherCosts[idx]
		otherCosts = append(otherCosts, OtherCostLineResponse{
			ID:        line.ID.String(),
			Name:      line.Name,
			Amount:    line.Amount,
			SortOrder: line.SortOrder,
		})
	}

	return &SheetResponse{
		ID:                 sheet.ID.String(),
		ProductName:        sheet.ProductName,
		ProductLengthMM:    sheet.ProductLengthMM,
		ProductWidthMM:     sheet.ProductWidthMM,
		ProductHeightMM:    sheet.ProductHeightMM,
		QuantityProduced:   sheet.QuantityProduced,
		Materials:          materials,
		Labor:              labor,
		OtherCosts:         otherCosts,
		OverheadCost:       sheet.OverheadCost,
		ManagementCost:     sheet.ManagementCost,
		SalesMarketingCost: sheet.SalesMarketingCost,
		Breakdown:          toBreakdownResponse(sheet.Calculate()),
		CreatedAt:          sheet.CreatedAt,
		UpdatedAt:          sheet.UpdatedAt,
	}
}

func toSheetSummaryResponse(sheet *costing.Sheet) SheetSummaryResponse {
	breakdown := sheet.Calculate()
	return SheetSummaryResponse{
		ID:          sheet.ID.String(),
		ProductName: sheet.ProductName,
		TotalCost:   breakdown.TotalCost,
		UnitCost:    breakdown.UnitCost,
		UpdatedAt:   sheet.UpdatedAt,
	}
}

func toBreakdownResponse(b costing.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		MaterialsCost:        b.MaterialsCost,
		LaborCost:            b.LaborCost,
		OtherCost:            b.OtherCost,
		OverheadAmount:       b.OverheadAmount,
		ManagementAmount:     b.ManagementAmount,
		SalesMarketingAmount: b.SalesMarketingAmount,
		TotalCost:            b.TotalCost,
		UnitCost:             b.UnitCost,
	}
}

func toMaterialResponse(m *costing.Material) *MaterialResponse {
	return &MaterialResponse{
		ID:         m.ID.String(),
		Name:       m.Name,
		Spec:       m.Spec,
		Dimensions: m.Dimensions,
		Unit:       m.Unit,
		Price:      m.Price,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toTemplateResponse(t *costing.Template) *TemplateResponse {
	return &TemplateResponse{
		ID:        t.ID.String(),
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
}
