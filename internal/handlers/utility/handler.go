package utility

import (
	"net/http"

	"kosan/infras/otel"
	"kosan/internal/domains/utility/model"
	"kosan/internal/domains/utility/model/dto"
	"kosan/internal/domains/utility/service"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	"kosan/shared/validator"
	"kosan/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service      service.Service
	usageService service.Usage
	otel         otel.Otel
}

func New(service service.Service, usageService service.Usage, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		usageService: usageService,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/services", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateService)
		routerGroup.Get("/", handler.GetServices)
		routerGroup.Get("/{id}", handler.GetServiceByID)
		routerGroup.Patch("/{id}", handler.UpdateService)
		routerGroup.Delete("/{id}", handler.DeleteService)
	})

	router.Route("/usages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateUsage)
		routerGroup.Get("/", handler.GetUsages)
		routerGroup.Get("/{id}", handler.GetUsageByID)
		routerGroup.Patch("/{id}", handler.UpdateUsage)
		routerGroup.Delete("/{id}", handler.DeleteUsage)
	})
}

// CreateService registers a utility service in the catalog.
func (handler *Handler) CreateService(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateService")
	defer scope.End()

	req := dto.CreateServiceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Service created: " + req.Name)

	response.WithMessage(writer, http.StatusCreated, "Service created successfully")
}

// GetServices lists the utility service catalog.
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	serviceType := r.URL.Query().Get(model.FieldType)
	name := r.URL.Query().Get(model.FieldName)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if serviceType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldType,
			Operator: gDto.FilterOperatorEq,
			Value:    serviceType,
			Table:    model.ServiceTableName,
		})
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.ServiceTableName,
		})
	}

	services, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Services retrieved successfully")

	response.WithPagination(w, http.StatusOK, services.Services, response.Pagination{
		CurrentPage:  queryParams.Page,
		Limit:        queryParams.Limit,
		TotalRecords: services.TotalData,
		TotalPages:   services.TotalPage,
	})
}

// GetServiceByID returns one catalog entry.
func (handler *Handler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	svc, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Service retrieved successfully")

	response.WithJSON(w, http.StatusOK, svc)
}

// UpdateService patches a catalog entry.
func (handler *Handler) UpdateService(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateService")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateServiceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update service")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Service updated successfully")

	response.WithMessage(writer, http.StatusOK, "Service updated successfully")
}

// DeleteService soft deletes a catalog entry.
func (handler *Handler) DeleteService(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteService")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete service")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Service deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Service deleted successfully")
}

// CreateUsage records a metered reading for a room and service.
func (handler *Handler) CreateUsage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUsage")
	defer scope.End()

	req := dto.CreateUsageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.usageService.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create usage")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Usage recorded for room " + req.RoomID)

	response.WithMessage(writer, http.StatusCreated, "Usage recorded successfully")
}

// GetUsages lists usage rows visible to the caller.
func (handler *Handler) GetUsages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	roomID := r.URL.Query().Get(constant.RequestParamRoomID)
	serviceID := r.URL.Query().Get(constant.RequestParamServiceID)
	month := r.URL.Query().Get(constant.RequestParamMonth)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if roomID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.UsageTableName,
		})
	}

	if serviceID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldServiceID,
			Operator: gDto.FilterOperatorEq,
			Value:    serviceID,
			Table:    model.UsageTableName,
		})
	}

	if month != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldMonth,
			Operator: gDto.FilterOperatorEq,
			Value:    month,
			Table:    model.UsageTableName,
		})
	}

	usages, err := handler.usageService.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get usages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Usages retrieved successfully")

	response.WithPagination(w, http.StatusOK, usages.Usages, response.Pagination{
		CurrentPage:  queryParams.Page,
		Limit:        queryParams.Limit,
		TotalRecords: usages.TotalData,
		TotalPages:   usages.TotalPage,
	})
}

// GetUsageByID returns one usage row.
func (handler *Handler) GetUsageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	usage, err := handler.usageService.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get usage by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Usage retrieved successfully")

	response.WithJSON(w, http.StatusOK, usage)
}

// UpdateUsage corrects a recorded reading.
func (handler *Handler) UpdateUsage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUsage")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateUsageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.usageService.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update usage")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Usage updated successfully")

	response.WithMessage(writer, http.StatusOK, "Usage updated successfully")
}

// DeleteUsage soft deletes a usage row.
func (handler *Handler) DeleteUsage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUsage")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.usageService.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete usage")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Usage deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Usage deleted successfully")
}
