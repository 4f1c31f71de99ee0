//go:build wireinject
// +build wireinject

package di

import (
	"kosan/config"
	"kosan/infras/jwt"
	"kosan/infras/kafka"
	"kosan/infras/otel"
	"kosan/infras/postgres"
	"kosan/infras/redis"
	"kosan/internal/access"
	"kosan/permissions"
	"kosan/shared/cache"
	"kosan/transport/http"
	"kosan/transport/http/middleware"
	"kosan/transport/http/router"

	branchRepository "kosan/internal/domains/branch/repository"
	branchService "kosan/internal/domains/branch/service"
	contractRepository "kosan/internal/domains/contract/repository"
	contractService "kosan/internal/domains/contract/service"
	invoiceRepository "kosan/internal/domains/invoice/repository"
	invoiceService "kosan/internal/domains/invoice/service"
	notificationService "kosan/internal/domains/notification/service"
	roomRepository "kosan/internal/domains/room/repository"
	roomService "kosan/internal/domains/room/service"
	userRepository "kosan/internal/domains/user/repository"
	userService "kosan/internal/domains/user/service"
	utilityRepository "kosan/internal/domains/utility/repository"
	utilityService "kosan/internal/domains/utility/service"

	authService "kosan/internal/domains/auth/service"

	authHandler "kosan/internal/handlers/auth"
	branchHandler "kosan/internal/handlers/branch"
	contractHandler "kosan/internal/handlers/contract"
	healthHandler "kosan/internal/handlers/health"
	invoiceHandler "kosan/internal/handlers/invoice"
	roomHandler "kosan/internal/handlers/room"
	userHandler "kosan/internal/handlers/user"
	utilityHandler "kosan/internal/handlers/utility"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

func provideBranchSource(repo branchRepository.Branch) access.BranchSource {
	return repo
}

func provideAssignmentSource(repo branchRepository.Assignment) access.AssignmentSource {
	return repo
}

func provideContractSource(repo contractRepository.Contract) access.ContractSource {
	return repo
}

var accessControl = wire.NewSet(
	provideBranchSource,
	provideAssignmentSource,
	provideContractSource,
	access.NewResolver,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var branchDomain = wire.NewSet(
	branchRepository.New,
	branchRepository.NewAssignment,
	branchRepository.NewCustomer,
	branchService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomRepository.NewRoomType,
	roomRepository.NewOccupant,
	roomService.New,
)

var contractDomain = wire.NewSet(
	contractRepository.New,
	contractService.New,
)

var utilityDomain = wire.NewSet(
	utilityRepository.New,
	utilityRepository.NewBranchDefault,
	utilityRepository.NewUsage,
	utilityRepository.NewUsageLines,
	utilityService.New,
	utilityService.NewUsage,
)

var invoiceDomain = wire.NewSet(
	invoiceRepository.New,
	invoiceRepository.NewPayment,
	invoiceService.NewAggregator,
	invoiceService.New,
)

var notificationDomain = wire.NewSet(
	notificationService.New,
)

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

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	branchHandler.New,
	roomHandler.New,
	contractHandler.New,
	utilityHandler.New,
	invoiceHandler.New,
	healthHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		accessControl,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
