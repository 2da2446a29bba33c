package deps

import (
	"context"
	"fmt"
	"medremind/internal/config"
	dl "medremind/internal/core/domain/logging"
	"medremind/internal/core/domain/medication"
	drl "medremind/internal/core/domain/rate_limiter"
	"medremind/internal/core/domain/recognition"
	"medremind/internal/core/domain/reminder"
	"medremind/internal/core/domain/speech"
	duow "medremind/internal/core/domain/unit_of_work"
	"medremind/internal/core/domain/user"
	dbmedication "medremind/internal/db/medication"
	"medremind/internal/db/migrations"
	dbreminder "medremind/internal/db/reminder"
	uow "medremind/internal/db/unit_of_work"
	dbuser "medremind/internal/db/user"
	"medremind/internal/implementations/email"
	eventstreams "medremind/internal/implementations/event_streams"
	imagestorage "medremind/internal/implementations/image_storage"
	"medremind/internal/implementations/logging"
	passwordhasher "medremind/internal/implementations/password_hasher"
	ratelimiter "medremind/internal/implementations/rate_limiter"
	"medremind/internal/implementations/recognizer"
	reminderevents "medremind/internal/implementations/reminder_events"
	speechsynth "medremind/internal/implementations/speech"
	"medremind/internal/implementations/token"
	"medremind/internal/implementations/unconfigured"
	voicecall "medremind/internal/implementations/voice_call"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork           duow.UnitOfWork
	UserRepository       user.UserRepository
	MedicationRepository medication.Repository
	ReminderRepository   reminder.Repository

	RateLimiter drl.RateLimiter

	PasswordHasher user.PasswordHasher
	TokenIssuer    user.TokenIssuer
	EventStreams   user.EventStreams

	EmailSender            reminder.EmailSender
	CallPlacer             reminder.CallPlacer
	ReminderEventPublisher reminder.EventPublisher

	Recognizer   recognition.Recognizer
	ImageStorage recognition.ImageStorage
	// UploadsDir is served under /uploads when images are stored locally.
	UploadsDir  string
	Synthesizer speech.Synthesizer
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	flushSentry := deps.initSentry()
	deps.runMigrations()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeSseServer := deps.initSseServer()

	location := deps.Config.Location()
	deps.Now = func() time.Time { return time.Now().In(location) }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.MedicationRepository = dbmedication.NewPgxRepository(deps.DB)
	deps.ReminderRepository = dbreminder.NewPgxReminderRepository(deps.DB)

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.TokenIssuer = token.NewJWT(deps.Config.Secret, deps.Now)

	hmacStreams := eventstreams.NewHMAC(deps.Config.Secret)
	deps.EventStreams = hmacStreams
	deps.ReminderEventPublisher = reminderevents.NewSSEPublisher(deps.SseServer, hmacStreams)

	deps.EmailSender = deps.initEmailSender()
	deps.CallPlacer = deps.initCallPlacer()
	deps.Recognizer = deps.initRecognizer()
	deps.Synthesizer = deps.initSynthesizer()
	deps.ImageStorage = deps.initImageStorage()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closeRedisClient,
			closePgxPool,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		flushSentry()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.SentryDsn != nil)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) runMigrations() {
	if err := migrations.Up(deps.Config.PostgresqlURL); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply DB migrations.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(context.Background(), "DB migrations applied.")
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initEmailSender() reminder.EmailSender {
	if !deps.Config.IsEmailConfigured() {
		deps.Logger.Warning(
			context.Background(),
			"Email provider credentials are not set, reminder emails will fail.",
			dl.Entry("provider", deps.Config.EmailProvider),
		)
		return unconfigured.New(deps.Config.EmailProvider)
	}
	if deps.Config.EmailProvider == config.EMAIL_PROVIDER_SENDGRID {
		return email.NewSendGridSender(
			deps.Config.SendgridAPIKey,
			deps.Config.SendgridFromName,
			deps.Config.SendgridFromEmail,
		)
	}
	return email.NewSESSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailReminderTemplate,
	)
}

func (deps *Deps) initCallPlacer() reminder.CallPlacer {
	if !deps.Config.IsTwilioConfigured() {
		deps.Logger.Warning(context.Background(), "Twilio credentials are not set, reminder calls will fail.")
		return unconfigured.New("twilio")
	}
	return voicecall.NewTwilio(
		deps.Logger,
		deps.Config.TwilioAccountSid,
		deps.Config.TwilioAuthToken,
		deps.Config.TwilioPhoneNumber,
	)
}

func (deps *Deps) initRecognizer() recognition.Recognizer {
	if deps.Config.GroqAPIKey == "" {
		deps.Logger.Warning(context.Background(), "GROQ_API_KEY is not set, medicine recognition is unavailable.")
		return unconfigured.New("medicine recognition")
	}
	return recognizer.NewOpenAI(
		deps.Config.GroqAPIKey,
		deps.Config.GroqBaseURL,
		deps.Config.GroqModel,
		deps.Now,
	)
}

func (deps *Deps) initSynthesizer() speech.Synthesizer {
	if deps.Config.ElevenlabsAPIKey == "" {
		deps.Logger.Warning(context.Background(), "ELEVENLABS_API_KEY is not set, text to speech is unavailable.")
		return unconfigured.New("text to speech")
	}
	return speechsynth.NewElevenLabs(
		deps.Config.ElevenlabsBaseURL,
		deps.Config.ElevenlabsAPIKey,
		deps.Config.ElevenlabsVoiceID,
	)
}

func (deps *Deps) initImageStorage() recognition.ImageStorage {
	if deps.Config.ImageStorage == config.IMAGE_STORAGE_CLOUDINARY {
		storage, err := imagestorage.NewCloudinary(deps.Config.CloudinaryURL, deps.Config.CloudinaryFolder)
		if err != nil {
			deps.Logger.Error(context.Background(), "Could not init Cloudinary.", dl.Entry("err", err))
			panic(err)
		}
		return storage
	}

	storage, err := imagestorage.NewLocal(deps.Config.UploadsDir)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create uploads directory.", dl.Entry("err", err))
		panic(err)
	}
	deps.UploadsDir = storage.Dir()
	return storage
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
