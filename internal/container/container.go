package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artwork-marketplace/config"
	repo "github.com/oksasatya/artwork-marketplace/internal/domain/repository"
	"github.com/oksasatya/artwork-marketplace/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg       *config.Config
	logger    *logrus.Logger
	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client

	users    repo.UserRepository
	artworks repo.ArtworkRepository
	reviews  repo.ReviewRepository
	sessions repo.SessionStore
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

// SetRepositories installs the entity store chosen by STORE_DRIVER.
func SetRepositories(u repo.UserRepository, a repo.ArtworkRepository, r repo.ReviewRepository) {
	users, artworks, reviews = u, a, r
}

func GetRepositories() (repo.UserRepository, repo.ArtworkRepository, repo.ReviewRepository) {
	return users, artworks, reviews
}

func SetSessions(s repo.SessionStore) { sessions = s }
func GetSessions() repo.SessionStore  { return sessions }
