package branch

import (
	"net/http"

	"kosan/infras/otel"
	"kosan/internal/domains/branch/model"
	"kosan/internal/domains/branch/model/dto"
	"kosan/internal/domains/branch/service"
	utilityDto "kosan/internal/domains/utility/model/dto"
	utilityService "kosan/internal/domains/utility/service"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	"kosan/shared/validator"
	"kosan/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service        service.Branch
	utilityService utilityService.Service
	otel           otel.Otel
}

func New(service service.Branch, utilityService utilityService.Service, otel otel.Otel) Handler {
	return Handler{
		service:        service,
		utilityService: utilityService,
		otel:           otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/branches", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBranch)
		routerGroup.Get("/", handler.GetBranches)
		routerGroup.Get("/{id}", handler.GetBranchByID)
		routerGroup.Patch("/{id}", handler.UpdateBranch)
		routerGroup.Delete("/{id}", handler.DeleteBranch)
		routerGroup.Post("/{id}/employees", handler.AssignEmployee)
		routerGroup.Post("/{id}/customers", handler.AttachCustomer)
		routerGroup.Put("/{id}/services/{service_id}", handler.SetServicePrice)
	})
}

// CreateBranch registers a new branch for an owner.
func (handler *Handler) CreateBranch(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBranch")
	defer scope.End()

	req := dto.CreateBranchRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create branch")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Branch created: " + req.Name)

	response.WithMessage(writer, http.StatusCreated, "Branch created successfully")
}

// GetBranches lists branches visible to the caller.
func (handler *Handler) GetBranches(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBranches")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	ownerID := r.URL.Query().Get(model.FieldOwnerID)
	name := r.URL.Query().Get(model.FieldName)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if ownerID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldOwnerID,
			Operator: gDto.FilterOperatorEq,
			Value:    ownerID,
			Table:    model.TableName,
		})
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	branches, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get branches")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Branches retrieved successfully")

	response.WithPagination(w, http.StatusOK, branches.Branches, response.Pagination{
		CurrentPage:  queryParams.Page,
		Limit:        queryParams.Limit,
		TotalRecords: branches.TotalData,
		TotalPages:   branches.TotalPage,
	})
}

// GetBranchByID returns one branch.
func (handler *Handler) GetBranchByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBranchByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	branch, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get branch by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Branch retrieved successfully")

	response.WithJSON(w, http.StatusOK, branch)
}

// UpdateBranch patches a branch's profile fields.
func (handler *Handler) UpdateBranch(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBranch")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateBranchRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update branch")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Branch updated successfully")

	response.WithMessage(writer, http.StatusOK, "Branch updated successfully")
}

// DeleteBranch soft deletes a branch.
func (handler *Handler) DeleteBranch(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBranch")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete branch")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Branch deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Branch deleted successfully")
}

// AssignEmployee attaches an employee account to the branch.
func (handler *Handler) AssignEmployee(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignEmployee")
	defer scope.End()

	branchID := chi.URLParam(request, constant.RequestParamID)

	req := dto.AssignEmployeeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.AssignEmployee(ctx, branchID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to assign employee")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Employee assigned to branch " + branchID)

	response.WithMessage(writer, http.StatusCreated, "Employee assigned successfully")
}

// AttachCustomer links a customer account to the branch.
func (handler *Handler) AttachCustomer(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AttachCustomer")
	defer scope.End()

	branchID := chi.URLParam(request, constant.RequestParamID)

	req := dto.AttachCustomerRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.AttachCustomer(ctx, branchID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to attach customer")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Customer attached to branch " + branchID)

	response.WithMessage(writer, http.StatusCreated, "Customer attached successfully")
}

// SetServicePrice sets or replaces the branch-level price override for a service.
func (handler *Handler) SetServicePrice(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetServicePrice")
	defer scope.End()

	branchID := chi.URLParam(request, constant.RequestParamID)
	serviceID := chi.URLParam(request, constant.RequestParamServiceID)

	req := utilityDto.SetBranchDefaultRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	override, err := handler.utilityService.SetBranchDefault(ctx, branchID, serviceID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set branch service price")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Service price override set for branch " + branchID)

	response.WithJSON(writer, http.StatusOK, override)
}
