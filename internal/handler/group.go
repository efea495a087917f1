package handler

import (
	"net/http"

	"github.com/MassBabyGeek/StudyHub-backend/internal/gamification"
	"github.com/MassBabyGeek/StudyHub-backend/internal/logger"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/MassBabyGeek/StudyHub-backend/internal/utils"
	"github.com/gorilla/mux"
)

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.CreateGroupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	group, err := h.Groups.CreateGroup(r.Context(), user.ID, req)
	if err != nil {
		utils.ErrorFrom(w, "could not create group", err)
		return
	}

	leveledUp := h.award(r.Context(), user.ID, gamification.PointsGroupCreated, gamification.ReasonGroupCreated)
	utils.Created(w, map[string]interface{}{"group": group, "leveledUp": leveledUp})
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	group, err := h.Groups.GetGroup(ctx, mux.Vars(r)["id"])
	if err != nil {
		utils.ErrorFrom(w, "group not found", err)
		return
	}

	if creator, err := h.Users.LoadCreator(ctx, group.CreatedBy); err == nil {
		group.Creator = creator
	} else {
		logger.Warning("creator of group %s: %v", group.ID, err)
	}
	utils.Success(w, group)
}

// JoinGroup les points ne sont attribués qu'à la première inscription
func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	groupID := mux.Vars(r)["id"]

	joined, err := h.Groups.JoinGroup(r.Context(), groupID, user.ID)
	if err != nil {
		utils.ErrorFrom(w, "could not join group", err)
		return
	}

	leveledUp := false
	if joined {
		leveledUp = h.award(r.Context(), user.ID, gamification.PointsGroupJoined, gamification.ReasonGroupJoined)
	}
	utils.Success(w, map[string]interface{}{"groupId": groupID, "joined": joined, "leveledUp": leveledUp})
}

// CreatePost réservé aux membres du groupe
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	groupID := mux.Vars(r)["id"]

	var req model.CreatePostRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Groups.GetGroup(ctx, groupID); err != nil {
		utils.ErrorFrom(w, "group not found", err)
		return
	}
	member, err := h.Groups.IsMember(ctx, groupID, user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not check membership", err)
		return
	}
	if !member {
		utils.Error(w, http.StatusForbidden, "join the group before posting")
		return
	}

	post, err := h.Groups.CreatePost(ctx, groupID, user.ID, req.Content)
	if err != nil {
		utils.ErrorFrom(w, "could not create post", err)
		return
	}

	leveledUp := h.award(ctx, user.ID, gamification.PointsPostCreated, gamification.ReasonPostCreated)
	utils.Created(w, map[string]interface{}{"post": post, "leveledUp": leveledUp})
}

// UploadPostAttachment image jointe (champ "file"), réservé à l'auteur du post
func (h *Handler) UploadPostAttachment(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	postID := mux.Vars(r)["id"]

	post, err := h.Groups.GetPost(ctx, postID)
	if err != nil {
		utils.ErrorFrom(w, "post not found", err)
		return
	}
	if post.AuthorID != user.ID {
		utils.Error(w, http.StatusForbidden, "only the author can attach a file")
		return
	}
	if h.Media == nil {
		utils.Error(w, http.StatusServiceUnavailable, "image upload is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "missing file (max 5MB)")
		return
	}
	defer file.Close()

	url, err := h.Media.UploadPostAttachment(ctx, file, postID)
	if err != nil {
		utils.Error(w, http.StatusBadGateway, "could not upload attachment", err)
		return
	}
	if err := h.Groups.SetPostAttachment(ctx, postID, url); err != nil {
		utils.ErrorFrom(w, "could not save attachment", err)
		return
	}

	post.AttachmentURL = url
	utils.Success(w, post)
}

// RemovePostAttachment supprime l'image du post chez Cloudinary puis efface l'URL
func (h *Handler) RemovePostAttachment(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	postID := mux.Vars(r)["id"]

	post, err := h.Groups.GetPost(ctx, postID)
	if err != nil {
		utils.ErrorFrom(w, "post not found", err)
		return
	}
	if post.AuthorID != user.ID {
		utils.Error(w, http.StatusForbidden, "only the author can remove the attachment")
		return
	}
	if post.AttachmentURL == "" {
		utils.Success(w, post)
		return
	}
	if h.Media == nil {
		utils.Error(w, http.StatusServiceUnavailable, "image upload is not configured")
		return
	}

	if err := h.Media.DeletePostAttachment(ctx, postID); err != nil {
		utils.Error(w, http.StatusBadGateway, "could not delete attachment", err)
		return
	}
	if err := h.Groups.SetPostAttachment(ctx, postID, ""); err != nil {
		utils.ErrorFrom(w, "could not clear attachment", err)
		return
	}

	post.AttachmentURL = ""
	utils.Success(w, post)
}
