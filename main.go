package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chat-client/internal/api"
	"chat-client/internal/directory"
	"chat-client/internal/handlers"
	"chat-client/internal/listeners"
	"chat-client/internal/models"
	"chat-client/internal/notify"
	"chat-client/internal/rabbitmq"
	"chat-client/internal/store"
	"chat-client/internal/sync"
	"chat-client/internal/telemetry"
)

func main() {
	baseURL := getEnv("CHAT_BASE_URL", "http://localhost:8080")
	wsURL := getEnv("CHAT_WS_URL", "ws://localhost:8080/ws")
	token := getEnv("CHAT_TOKEN", "")
	amqpURL := getEnv("AMQP_URL", "")
	amqpExchange := getEnv("AMQP_EXCHANGE", "chat_client_events")
	environment := getEnv("ENVIRONMENT", "development")
	metricsPort := getEnv("METRICS_PORT", "9091")

	client := api.NewClient(baseURL, token)
	roomAPI := api.NewRoomClient(client)
	userAPI := api.NewUserClient(client)

	rooms := directory.NewRoomDirectory(roomAPI)
	users := directory.NewUserDirectory(userAPI)
	msgStore := store.NewMessageStore(roomAPI)
	registry := listeners.NewRegistry()

	publisher := rabbitmq.NewPublisher(amqpURL, amqpExchange)
	defer publisher.Close()
	log.Printf("session telemetry publisher mode=%s", rabbitmq.PublisherMode(publisher))
	emitter := telemetry.NewSessionEmitter(publisher, "session_events.chat_client", "chat-client", environment)

	dispatcher := notify.NewDispatcher(users, notify.NewDesktopNotifier("chat-client"))

	engine := sync.NewEngine(wsURL, token, rooms, users, msgStore, registry, dispatcher, emitter, roomAPI)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engine.Start(ctx); err != nil {
		log.Fatalf("failed to start sync engine: %v", err)
	}
	defer engine.Close()

	tailRooms(ctx, rooms, users, msgStore, registry)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"socket": engine.State().String()})
	})
	handlers.RegisterDebugRoutes(router, emitter, getEnv("DEBUG_ENDPOINTS", "") == "true")

	srv := &http.Server{Addr: ":" + metricsPort, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("debug server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// tailRooms loads history for every known room and subscribes a console
// listener per room, so a headless run still shows the live stream.
func tailRooms(ctx context.Context, rooms *directory.RoomDirectory, users *directory.UserDirectory, msgStore *store.MessageStore, registry *listeners.Registry) {
	for _, room := range rooms.List() {
		room := room
		history, err := msgStore.LoadHistory(ctx, room.ID)
		if err != nil {
			log.Printf("failed to load history for room %q: %v", room.Name, err)
			continue
		}
		log.Printf("room %q: %d messages loaded", room.Name, len(history.Messages))

		registry.Subscribe(room.ID, listeners.KindNewMessage, func(event models.RoomEvent) {
			name := "someone"
			if author, ok := users.Lookup(event.Message.AuthorID); ok {
				name = author.Name
			}
			log.Printf("[%s] %s: %s", room.Name, name, event.Message.Body)
		})
		registry.Subscribe(room.ID, listeners.KindDeleteMessage, func(event models.RoomEvent) {
			log.Printf("[%s] message %s deleted", room.Name, event.MessageID)
		})
		registry.Subscribe(room.ID, listeners.KindEditMessage, func(event models.RoomEvent) {
			log.Printf("[%s] message %s edited: %s", room.Name, event.Message.ID, event.Message.Body)
		})
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
