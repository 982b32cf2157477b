package service

import (
	"context"
	"log"

	"github.com/appadook/appadook-portfolio-next/draft"
	"github.com/appadook/appadook-portfolio-next/models"
	"github.com/appadook/appadook-portfolio-next/repository"
)

// experienceCommitter adapts the experience repository to the draft commit
// pipeline and announces successful writes on the watch hub.
type experienceCommitter struct {
	repo repository.ExperienceRepositoryInterface
	hub  *WatchHub
}

func (c *experienceCommitter) CommitReorder(ctx context.Context, req *models.ReorderRequest) (*models.ReorderResponse, error) {
	updated, err := c.repo.Reorder(ctx, req.Items, req.CurrentID)
	if err != nil {
		return nil, err
	}
	c.hub.Publish(CollectionExperiences)
	return &models.ReorderResponse{UpdatedCount: updated}, nil
}

// projectCommitter adapts the project repository to the draft commit pipeline.
type projectCommitter struct {
	repo repository.ProjectRepositoryInterface
	hub  *WatchHub
}

func (c *projectCommitter) CommitReorder(ctx context.Context, req *models.ReorderRequest) (*models.ReorderResponse, error) {
	updated, err := c.repo.Reorder(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	c.hub.Publish(CollectionProjects)
	return &models.ReorderResponse{UpdatedCount: updated}, nil
}

// technologyCommitter adapts the technology repository to the batch commit
// pipeline.
type technologyCommitter struct {
	repo repository.TechnologyRepositoryInterface
	hub  *WatchHub
}

func (c *technologyCommitter) CommitBatch(ctx context.Context, req *models.BatchRequest) (*models.BatchResponse, error) {
	resp, err := c.repo.BatchApply(ctx, req)
	if err != nil {
		return nil, err
	}
	c.hub.Publish(CollectionTechnologies)
	return resp, nil
}

// DraftService owns the per-collection draft controllers for the admin
// dashboard. It subscribes to the watch hub and, whenever a collection's
// canonical data changes, refetches the snapshot and pushes it into the
// matching controller so staged edits stay reconciled.
type DraftService struct {
	experienceRepo repository.ExperienceRepositoryInterface
	projectRepo    repository.ProjectRepositoryInterface
	technologyRepo repository.TechnologyRepositoryInterface

	experiences  *draft.ReorderController
	projects     *draft.ReorderController
	technologies *draft.BatchController

	hub    *WatchHub
	events chan ChangeEvent
	done   chan struct{}
}

// NewDraftService wires the controllers and starts the canonical-update
// feed. The initial snapshots are loaded synchronously so the controllers
// never serve an empty view on startup.
func NewDraftService(
	hub *WatchHub,
	experienceRepo repository.ExperienceRepositoryInterface,
	projectRepo repository.ProjectRepositoryInterface,
	technologyRepo repository.TechnologyRepositoryInterface,
) *DraftService {
	s := &DraftService{
		experienceRepo: experienceRepo,
		projectRepo:    projectRepo,
		technologyRepo: technologyRepo,
		hub:            hub,
		events:         hub.Subscribe(),
		done:           make(chan struct{}),
	}

	s.experiences = draft.NewReorderController("experiences", true,
		&experienceCommitter{repo: experienceRepo, hub: hub})
	s.projects = draft.NewReorderController("projects", false,
		&projectCommitter{repo: projectRepo, hub: hub})
	s.technologies = draft.NewBatchController("technologies",
		&technologyCommitter{repo: technologyRepo, hub: hub})

	ctx := context.Background()
	s.refresh(ctx, CollectionExperiences)
	s.refresh(ctx, CollectionProjects)
	s.refresh(ctx, CollectionTechnologies)

	go s.feed()
	return s
}

// feed forwards hub change events into controller reconciliation.
func (s *DraftService) feed() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.events:
			if !ok {
				return
			}
			s.refresh(context.Background(), event.Collection)
		}
	}
}

// refresh refetches one collection's canonical snapshot and pushes it into
// the matching draft controller.
func (s *DraftService) refresh(ctx context.Context, collection Collection) {
	switch collection {
	case CollectionExperiences:
		experiences, err := s.experienceRepo.List(ctx)
		if err != nil {
			log.Printf("❌ DraftService: failed to refresh experiences: %v", err)
			return
		}
		ids := make([]string, 0, len(experiences))
		currentID := ""
		for _, e := range experiences {
			ids = append(ids, e.ID)
			if e.IsCurrent {
				currentID = e.ID
			}
		}
		s.experiences.UpdateCanonical(ids, currentID)
	case CollectionProjects:
		projects, err := s.projectRepo.List(ctx)
		if err != nil {
			log.Printf("❌ DraftService: failed to refresh projects: %v", err)
			return
		}
		ids := make([]string, 0, len(projects))
		for _, p := range projects {
			ids = append(ids, p.ID)
		}
		s.projects.UpdateCanonical(ids, "")
	case CollectionTechnologies:
		technologies, err := s.technologyRepo.List(ctx)
		if err != nil {
			log.Printf("❌ DraftService: failed to refresh technologies: %v", err)
			return
		}
		s.technologies.UpdateCanonical(technologies)
	}
}

// Experiences returns the experiences draft controller
func (s *DraftService) Experiences() *draft.ReorderController { return s.experiences }

// Projects returns the projects draft controller
func (s *DraftService) Projects() *draft.ReorderController { return s.projects }

// Technologies returns the technologies draft controller
func (s *DraftService) Technologies() *draft.BatchController { return s.technologies }

// Close stops the feed and the controllers.
func (s *DraftService) Close() {
	close(s.done)
	s.hub.Unsubscribe(s.events)
	s.experiences.Close()
	s.projects.Close()
	s.technologies.Close()
}
