package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readvoyage/internal/challenge"
	"github.com/mrlokans/readvoyage/internal/entities"
)

type ChallengeController struct {
	service *challenge.Service
}

func NewChallengeController(service *challenge.Service) *ChallengeController {
	return &ChallengeController{service: service}
}

type ChallengeResponse struct {
	entities.Challenge
	Progress   float64 `json:"progress"`
	Remaining  int     `json:"remaining"`
	Motivation string  `json:"motivation"`
}

type UpdateChallengeRequest struct {
	Target    *int `json:"target"`
	BooksRead *int `json:"booksRead"`
}

func newChallengeResponse(ch entities.Challenge) ChallengeResponse {
	return ChallengeResponse{
		Challenge:  ch,
		Progress:   ch.Progress(),
		Remaining:  ch.Remaining(),
		Motivation: ch.Motivation(),
	}
}

// Get handles GET /api/challenge
func (cc *ChallengeController) Get(c *gin.Context) {
	ch, err := cc.service.Get(c.Request.Context())
	if err != nil {
		respondDomainError(c, err, "get challenge")
		return
	}
	c.JSON(http.StatusOK, newChallengeResponse(ch))
}

// Update handles PUT /api/challenge
func (cc *ChallengeController) Update(c *gin.Context) {
	var req UpdateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Target == nil && req.BooksRead == nil {
		respondBadRequest(c, "target or booksRead is required")
		return
	}

	ctx := c.Request.Context()
	var (
		ch  entities.Challenge
		err error
	)
	if req.Target != nil {
		if ch, err = cc.service.SetTarget(ctx, *req.Target); err != nil {
			respondDomainError(c, err, "set challenge target")
			return
		}
	}
	if req.BooksRead != nil {
		if ch, err = cc.service.SetBooksRead(ctx, *req.BooksRead); err != nil {
			respondDomainError(c, err, "set books read")
			return
		}
	}
	c.JSON(http.StatusOK, newChallengeResponse(ch))
}

// Increment handles POST /api/challenge/increment
func (cc *ChallengeController) Increment(c *gin.Context) {
	ch, err := cc.service.Increment(c.Request.Context())
	if err != nil {
		respondDomainError(c, err, "increment challenge")
		return
	}
	c.JSON(http.StatusOK, newChallengeResponse(ch))
}
