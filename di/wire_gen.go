// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"kosan/config"
	"kosan/infras/jwt"
	"kosan/infras/kafka"
	"kosan/infras/otel"
	"kosan/infras/postgres"
	"kosan/infras/redis"
	"kosan/internal/access"
	"kosan/internal/domains/auth/service"
	repository2 "kosan/internal/domains/branch/repository"
	service3 "kosan/internal/domains/branch/service"
	repository3 "kosan/internal/domains/contract/repository"
	service6 "kosan/internal/domains/contract/service"
	repository6 "kosan/internal/domains/invoice/repository"
	service7 "kosan/internal/domains/invoice/service"
	service8 "kosan/internal/domains/notification/service"
	repository5 "kosan/internal/domains/room/repository"
	service5 "kosan/internal/domains/room/service"
	"kosan/internal/domains/user/repository"
	service2 "kosan/internal/domains/user/service"
	repository4 "kosan/internal/domains/utility/repository"
	service4 "kosan/internal/domains/utility/service"
	"kosan/internal/handlers/auth"
	"kosan/internal/handlers/branch"
	"kosan/internal/handlers/contract"
	"kosan/internal/handlers/health"
	"kosan/internal/handlers/invoice"
	"kosan/internal/handlers/room"
	"kosan/internal/handlers/user"
	"kosan/internal/handlers/utility"
	"kosan/permissions"
	"kosan/shared/cache"
	"kosan/transport/http"
	"kosan/transport/http/middleware"
	"kosan/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryUser := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(repositoryUser, configConfig, otelOtel, jwtJWT)
	handler := auth.New(serviceAuth, otelOtel)
	repositoryBranch := repository2.New(connection, otelOtel)
	branchSource := provideBranchSource(repositoryBranch)
	assignment := repository2.NewAssignment(connection, otelOtel)
	assignmentSource := provideAssignmentSource(assignment)
	repositoryContract := repository3.New(connection, otelOtel)
	contractSource := provideContractSource(repositoryContract)
	resolver := access.NewResolver(branchSource, assignmentSource, contractSource, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceUser := service2.New(repositoryUser, resolver, configConfig, redisCache, otelOtel)
	userHandler := user.New(serviceUser, otelOtel)
	customer := repository2.NewCustomer(connection, otelOtel)
	serviceBranch := service3.New(repositoryBranch, assignment, customer, repositoryUser, resolver, configConfig, redisCache, otelOtel)
	repositoryService := repository4.New(connection, otelOtel)
	branchDefault := repository4.NewBranchDefault(connection, otelOtel)
	serviceService := service4.New(repositoryService, branchDefault, resolver, configConfig, redisCache, otelOtel)
	branchHandler := branch.New(serviceBranch, serviceService, otelOtel)
	repositoryRoom := repository5.New(connection, otelOtel)
	roomType := repository5.NewRoomType(connection, otelOtel)
	serviceRoom := service5.New(repositoryRoom, roomType, resolver, configConfig, redisCache, otelOtel)
	roomHandler := room.New(serviceRoom, otelOtel)
	occupant := repository5.NewOccupant(connection, otelOtel)
	serviceContract := service6.New(repositoryContract, repositoryRoom, occupant, repositoryUser, resolver, connection, configConfig, redisCache, otelOtel)
	contractHandler := contract.New(serviceContract, otelOtel)
	usage := repository4.NewUsage(connection, otelOtel)
	serviceUsage := service4.NewUsage(usage, repositoryRoom, repositoryService, repositoryContract, resolver, configConfig, redisCache, otelOtel)
	utilityHandler := utility.New(serviceService, serviceUsage, otelOtel)
	repositoryInvoice := repository6.New(connection, otelOtel)
	payment := repository6.NewPayment(connection, otelOtel)
	usageLines := repository4.NewUsageLines(connection, otelOtel)
	aggregator := service7.NewAggregator(repositoryRoom, usageLines, branchDefault, otelOtel)
	kafkaClient := kafka.New(configConfig)
	notifier := service8.New(kafkaClient, configConfig, otelOtel)
	serviceInvoice := service7.New(repositoryInvoice, payment, repositoryContract, aggregator, resolver, notifier, connection, configConfig, redisCache, otelOtel)
	invoiceHandler := invoice.New(serviceInvoice, otelOtel)
	healthHandler := health.New(connection, client)
	domainHandlers := router.DomainHandlers{
		Auth:     handler,
		User:     userHandler,
		Branch:   branchHandler,
		Room:     roomHandler,
		Contract: contractHandler,
		Utility:  utilityHandler,
		Invoice:  invoiceHandler,
		Health:   healthHandler,
	}
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	routerRouter := router.New(domainHandlers, appMiddleware, authRole)
	httpHTTP := http.New(configConfig, routerRouter)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, kafka.New)

var middlewares = wire.NewSet(permissions.Get, middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

func provideBranchSource(repo repository2.Branch) access.BranchSource {
	return repo
}

func provideAssignmentSource(repo repository2.Assignment) access.AssignmentSource {
	return repo
}

func provideContractSource(repo repository3.Contract) access.ContractSource {
	return repo
}

var accessControl = wire.NewSet(
	provideBranchSource,
	provideAssignmentSource,
	provideContractSource, access.NewResolver,
)

var authDomain = wire.NewSet(service.New)

var userDomain = wire.NewSet(repository.New, service2.New)

var branchDomain = wire.NewSet(repository2.New, repository2.NewAssignment, repository2.NewCustomer, service3.New)

var roomDomain = wire.NewSet(repository5.New, repository5.NewRoomType, repository5.NewOccupant, service5.New)

var contractDomain = wire.NewSet(repository3.New, service6.New)

var utilityDomain = wire.NewSet(repository4.New, repository4.NewBranchDefault, repository4.NewUsage, repository4.NewUsageLines, service4.New, service4.NewUsage)

var invoiceDomain = wire.NewSet(repository6.New, repository6.NewPayment, service7.NewAggregator, service7.New)

var notificationDomain = wire.NewSet(service8.New)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	branchDomain,
	roomDomain,
	contractDomain,
	utilityDomain,
	invoiceDomain,
	notificationDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, user.New, branch.New, room.New, contract.New, utility.New, invoice.New, health.New, router.New)
