package services

import (
	"context"
	"medremind/internal/app/deps"
	c "medremind/internal/core/domain/common"
	drl "medremind/internal/core/domain/rate_limiter"
	"medremind/internal/core/services"
	"medremind/internal/core/services/auth"
	checkduereminders "medremind/internal/core/services/check_due_reminders"
	createmedication "medremind/internal/core/services/create_medication"
	createreminder "medremind/internal/core/services/create_reminder"
	deletemedication "medremind/internal/core/services/delete_medication"
	deletereminder "medremind/internal/core/services/delete_reminder"
	ensuredefaultuser "medremind/internal/core/services/ensure_default_user"
	getcurrentuser "medremind/internal/core/services/get_current_user"
	getmedication "medremind/internal/core/services/get_medication"
	listusermedications "medremind/internal/core/services/list_user_medications"
	listuserreminders "medremind/internal/core/services/list_user_reminders"
	login "medremind/internal/core/services/log_in"
	matchduereminders "medremind/internal/core/services/match_due_reminders"
	ratelimiting "medremind/internal/core/services/rate_limiting"
	recognizemedicine "medremind/internal/core/services/recognize_medicine"
	sendreminder "medremind/internal/core/services/send_reminder"
	signup "medremind/internal/core/services/sign_up"
	synthesizespeech "medremind/internal/core/services/synthesize_speech"
	updatemedication "medremind/internal/core/services/update_medication"
	updatereminder "medremind/internal/core/services/update_reminder"
	updateuser "medremind/internal/core/services/update_user"
)

type Services struct {
	SignUp         services.Service[signup.Input, signup.Result]
	LogIn          services.Service[login.Input, login.Result]
	GetCurrentUser services.Service[getcurrentuser.Input, getcurrentuser.Result]
	UpdateUser     services.Service[updateuser.Input, updateuser.Result]

	CreateMedication    services.Service[createmedication.Input, createmedication.Result]
	GetMedication       services.Service[getmedication.Input, getmedication.Result]
	ListUserMedications services.Service[listusermedications.Input, listusermedications.Result]
	UpdateMedication    services.Service[updatemedication.Input, updatemedication.Result]
	DeleteMedication    services.Service[deletemedication.Input, deletemedication.Result]

	CreateReminder    services.Service[createreminder.Input, createreminder.Result]
	ListUserReminders services.Service[listuserreminders.Input, listuserreminders.Result]
	UpdateReminder    services.Service[updatereminder.Input, updatereminder.Result]
	DeleteReminder    services.Service[deletereminder.Input, deletereminder.Result]

	RecognizeMedicine services.Service[recognizemedicine.Input, recognizemedicine.Result]
	SynthesizeSpeech  services.Service[synthesizespeech.Input, synthesizespeech.Result]

	MatchDueReminders services.Service[matchduereminders.Input, matchduereminders.Result]
	SendReminder      services.Service[sendreminder.Input, sendreminder.Result]
	CheckDueReminders *checkduereminders.Service
}

// InitServices wires the use cases. With authentication disabled the default
// user is upserted first and every request runs as that user.
func InitServices(deps *deps.Deps) *Services {
	s := &Services{}
	authenticator := initAuthenticator(deps)

	s.SignUp = signup.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.TokenIssuer,
		deps.Now,
	)
	s.LogIn = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		login.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordHasher,
			deps.TokenIssuer,
		),
	)
	s.GetCurrentUser = auth.WithAuthentication(
		authenticator,
		getcurrentuser.New(),
	)
	s.UpdateUser = auth.WithAuthentication(
		authenticator,
		updateuser.New(
			deps.Logger,
			deps.UserRepository,
		),
	)

	s.CreateMedication = auth.WithAuthentication(
		authenticator,
		createmedication.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.Now,
		),
	)
	s.GetMedication = auth.WithAuthentication(
		authenticator,
		getmedication.New(
			deps.Logger,
			deps.MedicationRepository,
		),
	)
	s.ListUserMedications = auth.WithAuthentication(
		authenticator,
		listusermedications.New(
			deps.Logger,
			deps.MedicationRepository,
		),
	)
	s.UpdateMedication = auth.WithAuthentication(
		authenticator,
		updatemedication.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.Now,
		),
	)
	s.DeleteMedication = auth.WithAuthentication(
		authenticator,
		deletemedication.New(
			deps.Logger,
			deps.UnitOfWork,
		),
	)

	s.CreateReminder = auth.WithAuthentication(
		authenticator,
		createreminder.New(
			deps.Logger,
			deps.MedicationRepository,
			deps.ReminderRepository,
			deps.Now,
		),
	)
	s.ListUserReminders = auth.WithAuthentication(
		authenticator,
		listuserreminders.New(
			deps.Logger,
			deps.ReminderRepository,
		),
	)
	s.UpdateReminder = auth.WithAuthentication(
		authenticator,
		updatereminder.New(
			deps.Logger,
			deps.ReminderRepository,
		),
	)
	s.DeleteReminder = auth.WithAuthentication(
		authenticator,
		deletereminder.New(
			deps.Logger,
			deps.ReminderRepository,
		),
	)

	s.RecognizeMedicine = auth.WithAuthentication(
		authenticator,
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Hour, Value: 30},
			recognizemedicine.New(
				deps.Logger,
				deps.Recognizer,
				deps.ImageStorage,
			),
		),
	)
	s.SynthesizeSpeech = auth.WithAuthentication(
		authenticator,
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Hour, Value: 60},
			synthesizespeech.New(
				deps.Logger,
				deps.Synthesizer,
			),
		),
	)

	s.MatchDueReminders = matchduereminders.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.Now,
	)
	s.SendReminder = sendreminder.New(
		deps.Logger,
		deps.ReminderRepository,
		deps.EmailSender,
		deps.CallPlacer,
		deps.ReminderEventPublisher,
		deps.Now,
	)
	s.CheckDueReminders = checkduereminders.New(
		deps.Logger,
		s.MatchDueReminders,
		s.SendReminder,
	)

	return s
}

func initAuthenticator(deps *deps.Deps) auth.Authenticator {
	if deps.Config.AuthEnabled {
		return auth.NewTokenAuthenticator(deps.UserRepository, deps.TokenIssuer)
	}

	phone := c.NewPhoneNumber(deps.Config.DefaultUserPhone)
	result, err := ensuredefaultuser.New(
		deps.Logger,
		deps.UserRepository,
		deps.Now,
	).Run(context.Background(), ensuredefaultuser.Input{
		Name:  deps.Config.DefaultUserName,
		Email: c.NewEmail(deps.Config.DefaultUserEmail),
		Phone: c.NewOptional(phone, phone != ""),
	})
	if err != nil {
		panic(err)
	}
	return auth.NewDefaultUserAuthenticator(deps.UserRepository, result.User.ID)
}
