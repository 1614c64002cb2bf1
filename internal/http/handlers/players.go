package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/war-scoreboard/internal/cache"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/ranking"
)

func ListPlayersHandler(store league.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := league.PlayerFilter{ActiveOnly: r.URL.Query().Get("active") == "true"}
		players, err := store.ListPlayers(r.Context(), filter)
		if err != nil {
			writeError(w, "Failed to get players", err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func CreatePlayerHandler(store league.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input league.NewPlayer
		if err := decodeJSON(r, &input); err != nil {
			writeError(w, "Invalid player payload", fmt.Errorf("%w: %v", league.ErrInvalidPlayer, err))
			return
		}
		player, err := store.RegisterPlayer(r.Context(), input)
		if err != nil {
			writeError(w, "Failed to register player", err)
			return
		}
		invalidate(r.Context(), c)
		log.Info("Player registered", "id", player.ID, "nickname", player.Nickname)
		writeJSON(w, http.StatusCreated, player)
	}
}

func GetPlayerHandler(store league.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		player, err := store.GetPlayer(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to get player", err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func UpdatePlayerHandler(store league.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update league.PlayerUpdate
		if err := decodeJSON(r, &update); err != nil {
			writeError(w, "Invalid player update", fmt.Errorf("%w: %v", league.ErrInvalidPlayer, err))
			return
		}
		player, err := store.UpdatePlayer(r.Context(), r.PathValue("id"), update)
		if err != nil {
			writeError(w, "Failed to update player", err)
			return
		}
		invalidate(r.Context(), c)
		writeJSON(w, http.StatusOK, player)
	}
}

// SetPlayerStatusHandler toggles the active flag with a {"active": bool} body.
func SetPlayerStatusHandler(store league.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Active *bool `json:"active"`
		}
		if err := decodeJSON(r, &body); err != nil || body.Active == nil {
			writeError(w, "Invalid status payload", fmt.Errorf("%w: body must be {\"active\": bool}", league.ErrInvalidPlayer))
			return
		}
		player, err := store.SetPlayerActive(r.Context(), r.PathValue("id"), *body.Active)
		if err != nil {
			writeError(w, "Failed to change player status", err)
			return
		}
		invalidate(r.Context(), c)
		log.Info("Player status changed", "id", player.ID, "active", player.Active)
		writeJSON(w, http.StatusOK, player)
	}
}

func PlayerProfileHandler(store league.Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		matches, players, err := loadSnapshot(r.Context(), store, league.MatchFilter{})
		if err != nil {
			writeError(w, "Failed to load league", err)
			return
		}
		profile, ok := ranking.PlayerProfile(matches, players, id)
		if !ok {
			writeError(w, "Player not found", fmt.Errorf("%w: %s", league.ErrPlayerNotFound, id))
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}
