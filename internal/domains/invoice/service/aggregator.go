package service

//go:generate go run go.uber.org/mock/mockgen -source=./aggregator.go -destination=../mocks/aggregator_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"kosan/infras/otel"
	"kosan/internal/domains/invoice/model"
	roomModel "kosan/internal/domains/room/model"
	roomRepo "kosan/internal/domains/room/repository"
	utilityModel "kosan/internal/domains/utility/model"
	utilityRepo "kosan/internal/domains/utility/repository"
	"kosan/shared"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	"kosan/shared/failure"
)

const roomPriceLineName = "room price"

// Aggregator computes an invoice amount for one room and month: the room's monthly
// price plus every metered usage line, each priced by the branch override when one
// exists and the service catalog price otherwise.
type Aggregator interface {
	ComputeAmount(ctx context.Context, roomID, branchID, month string) (decimal.Decimal, []model.BillingLine, error)
}

type aggregatorImpl struct {
	roomRepo       roomRepo.Room
	usageLinesRepo utilityRepo.UsageLines
	defaultRepo    utilityRepo.BranchDefault
	otel           otel.Otel
}

func NewAggregator(
	roomRepo roomRepo.Room,
	usageLinesRepo utilityRepo.UsageLines,
	defaultRepo utilityRepo.BranchDefault,
	otel otel.Otel,
) Aggregator {
	return &aggregatorImpl{
		roomRepo:       roomRepo,
		usageLinesRepo: usageLinesRepo,
		defaultRepo:    defaultRepo,
		otel:           otel,
	}
}

func (s *aggregatorImpl) ComputeAmount(ctx context.Context, roomID, branchID, month string) (res decimal.Decimal, lines []model.BillingLine, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".aggregator.ComputeAmount")
	defer scope.End()
	defer scope.TraceIfError(err)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for billing")

		return res, nil, fmt.Errorf("failed to get room for billing: %w", err)
	}

	if room.ID == constant.Empty {
		return res, nil, failure.NotFound("room") // nolint:wrapcheck
	}

	overrides, err := s.branchOverrides(ctx, branchID)
	if err != nil {
		return res, nil, err
	}

	usages, err := s.usageLinesRepo.GetAll(ctx, gDto.QueryParams{SortBy: utilityModel.UsageTableName + "." + constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    utilityModel.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    utilityModel.UsageTableName,
			},
			gDto.Filter{
				Field:    utilityModel.FieldMonth,
				Operator: gDto.FilterOperatorEq,
				Value:    month,
				Table:    utilityModel.UsageTableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get usage lines for billing")

		return res, nil, fmt.Errorf("failed to get usage lines for billing: %w", err)
	}

	// The room's monthly price is the first, synthetic line.
	lines = append(lines, model.BillingLine{
		ServiceName: roomPriceLineName,
		UsageAmount: decimal.NewFromInt(1),
		UnitPrice:   room.Price,
		LineAmount:  room.Price,
	})
	total := room.Price

	for _, usage := range usages {
		unitPrice := usage.Price
		if override, ok := overrides[usage.ServiceID]; ok {
			unitPrice = override
		}

		lineAmount := usage.UsageAmount.Mul(unitPrice)
		total = total.Add(lineAmount)

		lines = append(lines, model.BillingLine{
			ServiceID:   usage.ServiceID,
			ServiceName: usage.ServiceName,
			UsageAmount: usage.UsageAmount,
			UnitPrice:   unitPrice,
			LineAmount:  lineAmount,
		})
	}

	return total, lines, nil
}

func (s *aggregatorImpl) branchOverrides(ctx context.Context, branchID string) (map[string]decimal.Decimal, error) {
	defaults, err := s.defaultRepo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    utilityModel.FieldBranchID,
				Operator: gDto.FilterOperatorEq,
				Value:    branchID,
				Table:    utilityModel.BranchDefaultTableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get branch price overrides")

		return nil, fmt.Errorf("failed to get branch price overrides: %w", err)
	}

	overrides := make(map[string]decimal.Decimal, len(defaults))
	for _, def := range defaults {
		overrides[def.ServiceID] = def.CustomPrice
	}

	return overrides, nil
}
