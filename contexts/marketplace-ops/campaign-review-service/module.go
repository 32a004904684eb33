package campaignreviewservice

import (
	"log/slog"

	httpadapter "opsdesk/contexts/marketplace-ops/campaign-review-service/adapters/http"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/adapters/memory"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/application/commands"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/application/queries"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/domain/entities"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Campaigns ports.CampaignRepository
	Edits     ports.EditRequestRepository
	Creators  ports.CreatorRepository
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createDraft := commands.CreateDraftUseCase{
		Campaigns: deps.Campaigns,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	submitCampaign := commands.SubmitCampaignUseCase{
		Campaigns: deps.Campaigns,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	reviewCampaign := commands.ReviewCampaignUseCase{
		Campaigns: deps.Campaigns,
		Edits:     deps.Edits,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	changeStatus := commands.ChangeStatusUseCase{
		Campaigns: deps.Campaigns,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	submitEdit := commands.SubmitEditUseCase{
		Campaigns: deps.Campaigns,
		Edits:     deps.Edits,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	reviewEdit := commands.ReviewEditUseCase{
		Campaigns: deps.Campaigns,
		Edits:     deps.Edits,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}

	listCampaigns := queries.ListCampaignsUseCase{
		Campaigns: deps.Campaigns,
		Creators:  deps.Creators,
		Logger:    deps.Logger,
	}
	getCampaign := queries.GetCampaignUseCase{
		Campaigns: deps.Campaigns,
		Creators:  deps.Creators,
		Logger:    deps.Logger,
	}
	listEdits := queries.ListEditRequestsUseCase{
		Edits:  deps.Edits,
		Logger: deps.Logger,
	}
	getEditSummary := queries.GetEditRequestUseCase{
		Edits:  deps.Edits,
		Logger: deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateDraft:    createDraft,
			SubmitCampaign: submitCampaign,
			ReviewCampaign: reviewCampaign,
			ChangeStatus:   changeStatus,
			SubmitEdit:     submitEdit,
			ReviewEdit:     reviewEdit,
			ListCampaigns:  listCampaigns,
			GetCampaign:    getCampaign,
			ListEdits:      listEdits,
			GetEditSummary: getEditSummary,
			Logger:         deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Campaign, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Campaigns: store,
		Edits:     store,
		Creators:  store,
		Outbox:    store,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
