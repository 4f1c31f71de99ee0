package contract

import (
	"net/http"

	"kosan/infras/otel"
	"kosan/internal/domains/contract/model"
	"kosan/internal/domains/contract/model/dto"
	"kosan/internal/domains/contract/service"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	"kosan/shared/validator"
	"kosan/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Contract
	otel    otel.Otel
}

func New(service service.Contract, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contracts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateContract)
		routerGroup.Get("/", handler.GetContracts)
		routerGroup.Get("/{id}", handler.GetContractByID)
		routerGroup.Patch("/{id}", handler.UpdateContract)
		routerGroup.Delete("/{id}", handler.DeleteContract)
	})
}

// CreateContract opens a rental contract binding a customer to a room.
func (handler *Handler) CreateContract(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContract")
	defer scope.End()

	req := dto.CreateContractRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contract")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Contract created for room " + req.RoomID)

	response.WithMessage(writer, http.StatusCreated, "Contract created successfully")
}

// GetContracts lists contracts visible to the caller.
func (handler *Handler) GetContracts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContracts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	branchID := r.URL.Query().Get(constant.RequestParamBranchID)
	roomID := r.URL.Query().Get(constant.RequestParamRoomID)
	status := r.URL.Query().Get(constant.RequestParamStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if branchID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBranchID,
			Operator: gDto.FilterOperatorEq,
			Value:    branchID,
			Table:    model.TableName,
		})
	}

	if roomID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	contracts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contracts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contracts retrieved successfully")

	response.WithPagination(w, http.StatusOK, contracts.Contracts, response.Pagination{
		CurrentPage:  queryParams.Page,
		Limit:        queryParams.Limit,
		TotalRecords: contracts.TotalData,
		TotalPages:   contracts.TotalPage,
	})
}

// GetContractByID returns one contract.
func (handler *Handler) GetContractByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContractByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	contract, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contract by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contract retrieved successfully")

	response.WithJSON(w, http.StatusOK, contract)
}

// UpdateContract patches a contract's status or end date. Leaving the active
// status releases the room.
func (handler *Handler) UpdateContract(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContract")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateContractRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contract")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Contract updated successfully")

	response.WithMessage(writer, http.StatusOK, "Contract updated successfully")
}

// DeleteContract soft deletes a contract.
func (handler *Handler) DeleteContract(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContract")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contract")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Contract deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Contract deleted successfully")
}
