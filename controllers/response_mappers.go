package controllers

import "pawsgram/models"

func feedRowToPostDTO(row models.FeedRow) PostDTO {
	return PostDTO{
		ID:             row.ID,
		PublicID:       row.PublicID,
		Caption:        row.Caption,
		ImagePath:      row.ImagePath,
		AuthorID:       row.AuthorID,
		AuthorUsername: row.AuthorUsername,
		AuthorAvatar:   row.AuthorAvatar,
		LikeCount:      row.LikeCount,
		SaveCount:      row.SaveCount,
		UserHasLiked:   row.ViewerLiked > 0,
		UserHasSaved:   row.ViewerSaved > 0,
		CreatedAt:      row.CreatedAt,
	}
}

func feedRowsToPostDTOs(rows []models.FeedRow) []PostDTO {
	posts := make([]PostDTO, len(rows))
	for i := range rows {
		posts[i] = feedRowToPostDTO(rows[i])
	}
	return posts
}

func userToResponse(user *models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		PublicID:   user.PublicID,
		Name:       user.Name,
		Username:   user.Username,
		Email:      user.Email,
		Bio:        user.Bio,
		AvatarPath: user.AvatarPath,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func usersToSummaries(users []models.User) []UserSummaryDTO {
	summaries := make([]UserSummaryDTO, len(users))
	for i := range users {
		summaries[i] = UserSummaryDTO{
			ID:         users[i].ID,
			PublicID:   users[i].PublicID,
			Name:       users[i].Name,
			Username:   users[i].Username,
			AvatarPath: users[i].AvatarPath,
		}
	}
	return summaries
}
