package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hela9_backend/internal/auth"
	"hela9_backend/internal/models"
	"hela9_backend/internal/services/dto"
	"hela9_backend/internal/testutil"
	"hela9_backend/pkg/apperrors"
)

func clientSignup(email string) *dto.SignupClientRequest {
	return &dto.SignupClientRequest{Name: "Amine", Email: email, Password: "secret123", City: "Paris"}
}

func TestSignupClient_DuplicateEmailRejected(t *testing.T) {
	// 1. Подготовка
	f := newFixture(t)
	_, err := f.svc.AuthService.SignupClient(ctx, f.db, clientSignup("amine@example.com"))
	require.NoError(t, err)

	// 2. Действие
	_, err = f.svc.AuthService.SignupClient(ctx, f.db, clientSignup("Amine@Example.com "))

	// 3. Проверка
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyRegistered)
	var count int64
	f.db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSignupClient_SendsCodeAndStoresHash(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.AuthService.SignupClient(ctx, f.db, clientSignup("sara@example.com"))

	require.NoError(t, err)
	assert.True(t, resp.ConfirmationRequired)
	assert.False(t, resp.User.IsConfirmed)

	sent := f.mailer.Last()
	require.NotNil(t, sent)
	assert.Equal(t, []string{"sara@example.com"}, sent.To)
	assert.Equal(t, subjectConfirmationCode, sent.Subject)
	assert.Len(t, f.mailer.LastCode(), 6)

	var user models.User
	require.NoError(t, f.db.First(&user, "id = ?", resp.User.ID).Error)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, auth.CheckPasswordHash("secret123", user.PasswordHash))
}

func TestSignupClient_MailerFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.mailer.Err = assert.AnError

	_, err := f.svc.AuthService.SignupClient(ctx, f.db, clientSignup("nomail@example.com"))

	assert.NoError(t, err)
}

func TestConfirm_CodeAcceptedOnce(t *testing.T) {
	// 1. Подготовка
	f := newFixture(t)
	resp, err := f.svc.AuthService.SignupClient(ctx, f.db, clientSignup("once@example.com"))
	require.NoError(t, err)
	code := f.mailer.LastCode()

	// 2. Действие
	first, err := f.svc.AuthService.Confirm(ctx, f.db, resp.User.ID, code)
	require.NoError(t, err)
	_, secondErr := f.svc.AuthService.Confirm(ctx, f.db, resp.User.ID, code)

	// 3. Проверка
	assert.False(t, first.ProfileActivated)
	assert.ErrorIs(t, secondErr, apperrors.ErrAlreadyConfirmed)

	var user models.User
	require.NoError(t, f.db.First(&user, "id = ?", resp.User.ID).Error)
	assert.True(t, user.IsConfirmed)
	assert.Nil(t, user.ConfirmationCode)
}

func TestConfirm_WrongCodeChangesNothing(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, models.UserRoleClient, testutil.Unconfirmed("111111"))

	_, err := f.svc.AuthService.Confirm(ctx, f.db, user.ID, "222222")

	assert.ErrorIs(t, err, apperrors.ErrInvalidConfirmationCode)
	var reloaded models.User
	require.NoError(t, f.db.First(&reloaded, "id = ?", user.ID).Error)
	assert.False(t, reloaded.IsConfirmed)
	require.NotNil(t, reloaded.ConfirmationCode)
	assert.Equal(t, "111111", *reloaded.ConfirmationCode)
}

func TestConfirm_RequiresSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AuthService.Confirm(ctx, f.db, "", "123456")

	assert.Equal(t, 401, apperrors.StatusCode(err))
}

func TestConfirm_StylistActivatesWithThirtyDayTrial(t *testing.T) {
	// 1. Подготовка
	f := newFixture(t)
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	f.setNow(now)
	req := &dto.SignupStylistRequest{
		Name: "Yassine", Email: "yassine@example.com", Password: "secret123", City: "Paris",
		Phone: "+33 6 00 00 00 01", Category: "Men", Address: "10 rue Oberkampf", PaymentName: "Y. B.",
	}
	resp, err := f.svc.AuthService.SignupStylist(ctx, f.db, req, imageFile(t, "proof.png"))
	require.NoError(t, err)

	var pending models.StylistProfile
	require.NoError(t, f.db.First(&pending, "user_id = ?", resp.User.ID).Error)
	assert.Equal(t, models.StylistStatusPendingEmailConfirmation, pending.Status)
	assert.Equal(t, models.DefaultAvatar(models.CategoryMen), pending.ProfileImage)
	assert.True(t, strings.HasPrefix(pending.PaymentProof, UploadKindPaymentProof+"/"+resp.User.ID+"/"))
	assert.True(t, f.storage.Has(pending.PaymentProof))

	// 2. Действие
	confirm, err := f.svc.AuthService.Confirm(ctx, f.db, resp.User.ID, f.mailer.LastCode())

	// 3. Проверка
	require.NoError(t, err)
	assert.True(t, confirm.ProfileActivated)

	var profile models.StylistProfile
	require.NoError(t, f.db.First(&profile, "user_id = ?", resp.User.ID).Error)
	assert.Equal(t, models.StylistStatusActive, profile.Status)
	require.NotNil(t, profile.TrialStart)
	require.NotNil(t, profile.TrialEnd)
	require.NotNil(t, profile.ActivationDate)
	assert.True(t, profile.TrialStart.Equal(now))
	assert.Equal(t, 30*24*time.Hour, profile.TrialEnd.Sub(*profile.TrialStart))
}

func TestSignupStylist_InvalidProofRejectedBeforeWrite(t *testing.T) {
	f := newFixture(t)
	req := &dto.SignupStylistRequest{
		Name: "Nadia", Email: "nadia@example.com", Password: "secret123", City: "Lyon",
		Phone: "0600000000", Category: "Women", Address: "2 place Bellecour",
	}

	_, err := f.svc.AuthService.SignupStylist(ctx, f.db, req, imageFile(t, "proof.pdf"))

	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	assert.Zero(t, f.storage.Count())
	var count int64
	f.db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	client := testutil.CreateUser(t, f.db, models.UserRoleClient)

	t.Run("bad password", func(t *testing.T) {
		_, err := f.svc.AuthService.Login(ctx, f.db, &dto.LoginRequest{Email: client.Email, Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.AuthService.Login(ctx, f.db, &dto.LoginRequest{Email: "ghost@example.com", Password: "x"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("success", func(t *testing.T) {
		resp, err := f.svc.AuthService.Login(ctx, f.db, &dto.LoginRequest{Email: client.Email, Password: testutil.DefaultPassword})
		require.NoError(t, err)
		assert.False(t, resp.ConfirmationRequired)
		assert.Equal(t, client.ID, resp.User.ID)
		assert.Empty(t, resp.Warnings)
	})
}

func TestLogin_UnconfirmedResendsExistingCode(t *testing.T) {
	// 1. Подготовка
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, models.UserRoleClient, testutil.Unconfirmed("424242"))

	// 2. Действие
	resp, err := f.svc.AuthService.Login(ctx, f.db, &dto.LoginRequest{Email: user.Email, Password: testutil.DefaultPassword})

	// 3. Проверка
	require.NoError(t, err)
	assert.True(t, resp.ConfirmationRequired)
	assert.Equal(t, "424242", f.mailer.LastCode())
}

func TestLogin_UnconfirmedWithoutCodeGetsNewOne(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, models.UserRoleClient, func(u *models.User) { u.IsConfirmed = false })

	resp, err := f.svc.AuthService.Login(ctx, f.db, &dto.LoginRequest{Email: user.Email, Password: testutil.DefaultPassword})

	require.NoError(t, err)
	assert.True(t, resp.ConfirmationRequired)
	code := f.mailer.LastCode()
	assert.Len(t, code, 6)

	var reloaded models.User
	require.NoError(t, f.db.First(&reloaded, "id = ?", user.ID).Error)
	require.NotNil(t, reloaded.ConfirmationCode)
	assert.Equal(t, code, *reloaded.ConfirmationCode)
}

func TestLogin_StylistExpiredTrialWarnsButSucceeds(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.setNow(now)
	stylist, _ := testutil.CreateStylist(t, f.db, models.CategoryWomen, nil,
		testutil.WithTrial(now.AddDate(0, 0, -40), now.AddDate(0, 0, -10)))

	resp, err := f.svc.AuthService.Login(ctx, f.db, &dto.LoginRequest{Email: stylist.Email, Password: testutil.DefaultPassword})

	require.NoError(t, err)
	assert.Equal(t, []string{warningTrialExpired}, resp.Warnings)
}

func TestPasswordResetFlow(t *testing.T) {
	// 1. Подготовка
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, models.UserRoleClient)

	// 2. Действие / 3. Проверка
	found, err := f.svc.AuthService.Forgot(ctx, f.db, user.Email)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, subjectPasswordReset, f.mailer.Last().Subject)
	code := f.mailer.LastCode()

	wrong := "000000"
	if code == wrong {
		wrong = "999999"
	}
	assert.ErrorIs(t, f.svc.AuthService.VerifyResetCode(ctx, f.db, user.Email, wrong), apperrors.ErrInvalidResetCode)
	require.NoError(t, f.svc.AuthService.VerifyResetCode(ctx, f.db, user.Email, code))

	err = f.svc.AuthService.ResetPassword(ctx, f.db, user.Email, &dto.ResetRequest{NewPassword: "newpass1", ConfirmPassword: "newpass2"})
	assert.ErrorIs(t, err, apperrors.ErrPasswordMismatch)

	err = f.svc.AuthService.ResetPassword(ctx, f.db, user.Email, &dto.ResetRequest{NewPassword: "newpass1", ConfirmPassword: "newpass1"})
	require.NoError(t, err)

	_, err = f.svc.AuthService.Login(ctx, f.db, &dto.LoginRequest{Email: user.Email, Password: "newpass1"})
	assert.NoError(t, err)

	var reloaded models.User
	require.NoError(t, f.db.First(&reloaded, "id = ?", user.ID).Error)
	assert.Nil(t, reloaded.ConfirmationCode)
}

func TestForgot_UnknownEmailIsSilent(t *testing.T) {
	f := newFixture(t)

	found, err := f.svc.AuthService.Forgot(ctx, f.db, "nobody@example.com")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, f.mailer.Last())
}

func TestResetPassword_UnknownUserExpiresSession(t *testing.T) {
	f := newFixture(t)

	err := f.svc.AuthService.ResetPassword(ctx, f.db, "gone@example.com", &dto.ResetRequest{NewPassword: "abcdef", ConfirmPassword: "abcdef"})

	assert.ErrorIs(t, err, apperrors.ErrResetSessionExpired)
}
