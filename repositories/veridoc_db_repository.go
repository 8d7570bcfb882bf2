package repositories

type VeridocDbRepository struct{}

func NewVeridocDbRepository() *VeridocDbRepository {
	return &VeridocDbRepository{}
}
