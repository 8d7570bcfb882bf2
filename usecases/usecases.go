package usecases

import (
	"github.com/veridoc/veridoc-backend/repositories"
	"github.com/veridoc/veridoc-backend/usecases/executor_factory"
)

type Usecases struct {
	Repositories repositories.Repositories
}

func NewUsecases(repos repositories.Repositories) Usecases {
	return Usecases{
		Repositories: repos,
	}
}

func (usecases Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases Usecases) NewAuditRecorderUsecase() AuditRecorderUsecase {
	return AuditRecorderUsecase{
		transactionFactory: usecases.NewTransactionFactory(),
		repository:         usecases.Repositories.VeridocDbRepository,
	}
}

func (usecases Usecases) NewAuditRootUsecase() AuditRootUsecase {
	return AuditRootUsecase{
		executorFactory:        usecases.NewExecutorFactory(),
		transactionFactory:     usecases.NewTransactionFactory(),
		eventRepository:        usecases.Repositories.VeridocDbRepository,
		rootRepository:         usecases.Repositories.VeridocDbRepository,
		verificationRepository: usecases.Repositories.VeridocDbRepository,
	}
}

func (usecases Usecases) NewAuditVerificationUsecase() AuditVerificationUsecase {
	return AuditVerificationUsecase{
		executorFactory:        usecases.NewExecutorFactory(),
		eventRepository:        usecases.Repositories.VeridocDbRepository,
		rootRepository:         usecases.Repositories.VeridocDbRepository,
		verificationRepository: usecases.Repositories.VeridocDbRepository,
	}
}

func (usecases Usecases) NewAuditQueryUsecase() AuditQueryUsecase {
	return AuditQueryUsecase{
		executorFactory: usecases.NewExecutorFactory(),
		repository:      usecases.Repositories.VeridocDbRepository,
	}
}
