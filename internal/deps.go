package internal

import (
	"bitwise74/medflow-api/config"
	"bitwise74/medflow-api/internal/service"
	"bitwise74/medflow-api/internal/store"

	"gorm.io/gorm"
)

// Deps is everything the HTTP handlers need
type Deps struct {
	Config *config.Config
	DB     *gorm.DB

	Registration *service.Registration
	Users        *service.UserService
	Notifier     *service.Notifier
	Devices      *service.DeviceService
	Symptoms     *service.SymptomService
	Categories   *service.CategoryService
	QuickTips    *service.QuickTipService
	Notes        *service.NoteService
	Questions    *service.QuestionService

	// Kept around for the token cleanup job
	UserStore store.Users
}

// Providers are the external systems the services talk to
type Providers struct {
	Mailer   service.Mailer
	Push     service.PushSender
	Identity service.IdentityVerifier
	Images   service.ImageStore
}

// NewDeps wires stores and services on top of an open database
func NewDeps(c *config.Config, db *gorm.DB, p Providers) *Deps {
	users := store.NewUserStore(db)
	categories := store.NewCategoryStore(db)
	notifier := service.NewNotifier(users, p.Push)

	return &Deps{
		Config: c,
		DB:     db,

		Registration: service.NewRegistration(users, p.Mailer, p.Identity, c),
		Users:        service.NewUserService(users),
		Notifier:     notifier,
		Devices:      service.NewDeviceService(store.NewDeviceStore(db)),
		Symptoms:     service.NewSymptomService(store.NewSymptomStore(db), p.Images),
		Categories:   service.NewCategoryService(categories, p.Images, c.Catalog.DefaultCategory),
		QuickTips:    service.NewQuickTipService(store.NewQuickTipStore(db), categories),
		Notes:        service.NewNoteService(store.NewNoteStore(db)),
		Questions:    service.NewQuestionService(store.NewQuestionStore(db), notifier),

		UserStore: users,
	}
}
