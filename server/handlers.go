package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/gamerec/core"
	"github.com/poiesic/gamerec/present"
)

func (s *Server) handleRecommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: missingQueryMessage})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: missingQueryMessage})
		return
	}
	tone := strings.ToLower(strings.TrimSpace(req.Tone))
	if tone == "" {
		tone = string(core.ToneAll)
	}

	key := cacheKey(tone, query)
	if recs, ok := s.cache.get(key); ok {
		c.JSON(http.StatusOK, recommendResponse{Recommendations: recs})
		return
	}

	// Shared callers must not lose the result if the first one disconnects.
	ctx := context.WithoutCancel(c.Request.Context())
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.rec.Recommend(ctx, query, tone)
	})
	if err != nil {
		s.logger.Error("error generating recommendations", "err", err,
			"errType", fmt.Sprintf("%T", err),
			"requestID", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"clientIP", c.ClientIP(),
			"tone", tone,
			"queryLen", len(query))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	recs := v.([]present.Recommendation)
	if recs == nil {
		recs = []present.Recommendation{}
	}
	s.cache.set(key, recs)
	c.JSON(http.StatusOK, recommendResponse{Recommendations: recs})
}

func (s *Server) handleTest(c *gin.Context) {
	c.String(http.StatusOK, testMessage)
}

func (s *Server) handleHealth(c *gin.Context) {
	manifest := s.rec.Manifest()
	builtAt := ""
	if manifest.BuiltAt > 0 {
		builtAt = time.Unix(manifest.BuiltAt, 0).UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, healthResponse{
		Status:         "ok",
		Games:          s.rec.GameCount(),
		Chunks:         s.rec.ChunkCount(),
		EmbeddingModel: manifest.EmbeddingModel,
		BuiltAt:        builtAt,
		CachedResults:  s.cache.len(),
	})
}
