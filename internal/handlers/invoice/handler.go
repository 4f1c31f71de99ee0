package invoice

import (
	"net/http"

	"kosan/infras/otel"
	"kosan/internal/domains/invoice/model"
	"kosan/internal/domains/invoice/model/dto"
	"kosan/internal/domains/invoice/service"
	"kosan/shared/constant"
	gDto "kosan/shared/dto"
	"kosan/shared/validator"
	"kosan/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/invoices", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateInvoice)
		routerGroup.Get("/", handler.GetInvoices)
		routerGroup.Post("/bulk", handler.BulkGenerate)
		routerGroup.Get("/{id}", handler.GetInvoiceByID)
		routerGroup.Get("/{id}/details", handler.GetInvoiceByID)
		routerGroup.Put("/{id}", handler.UpdateInvoice)
		routerGroup.Patch("/{id}", handler.UpdateInvoice)
		routerGroup.Delete("/{id}", handler.DeleteInvoice)
	})
}

// CreateInvoice registers a single manual invoice.
func (handler *Handler) CreateInvoice(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInvoice")
	defer scope.End()

	req := dto.CreateInvoiceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create invoice")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Invoice created successfully")

	response.WithMessage(writer, http.StatusCreated, "Invoice created successfully")
}

// GetInvoices lists invoices visible to the caller, with optional filters.
func (handler *Handler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	branchID := r.URL.Query().Get(constant.RequestParamBranchID)
	contractID := r.URL.Query().Get(model.FieldContractID)
	status := r.URL.Query().Get(constant.RequestParamStatus)
	month := r.URL.Query().Get(constant.RequestParamMonth)

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

	if contractID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldContractID,
			Operator: gDto.FilterOperatorEq,
			Value:    contractID,
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

	if month != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBillingMonth,
			Operator: gDto.FilterOperatorEq,
			Value:    month,
			Table:    model.TableName,
		})
	}

	invoices, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Invoices retrieved successfully")

	response.WithPagination(w, http.StatusOK, invoices.Invoices, response.Pagination{
		CurrentPage:  queryParams.Page,
		Limit:        queryParams.Limit,
		TotalRecords: invoices.TotalData,
		TotalPages:   invoices.TotalPage,
	})
}

// BulkGenerate recomputes and upserts invoices for every billable contract of a
// branch and month.
func (handler *Handler) BulkGenerate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BulkGenerate")
	defer scope.End()

	req := dto.BulkGenerateRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	result, err := handler.service.BulkGenerate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to bulk generate invoices")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Invoices generated for branch " + req.BranchID)

	response.WithJSON(writer, http.StatusOK, result)
}

// GetInvoiceByID returns one invoice with its recomputed billing lines.
func (handler *Handler) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoiceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	invoice, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoice by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Invoice retrieved successfully")

	response.WithJSON(w, http.StatusOK, invoice)
}

// UpdateInvoice patches an invoice's amount, due date or status.
func (handler *Handler) UpdateInvoice(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInvoice")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateInvoiceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update invoice")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Invoice updated successfully")

	response.WithMessage(writer, http.StatusOK, "Invoice updated successfully")
}

// DeleteInvoice soft deletes an invoice. Payment history is untouched.
func (handler *Handler) DeleteInvoice(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteInvoice")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete invoice")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Invoice deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Invoice deleted successfully")
}
