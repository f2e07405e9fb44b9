package service

import (
	"strings"
	"time"

	"github.com/jemo-market/api/internal/constants"
	"github.com/jemo-market/api/internal/models"
	"github.com/jemo-market/api/internal/repository"

	"gorm.io/gorm"
)

// KycService identity verification for vendor and agency profiles. The
// decision is denormalized onto the profile so catalog and job queries
// never join the submission table.
type KycService struct {
	kycRepo    repository.KycRepository
	userRepo   repository.UserRepository
	vendorRepo repository.VendorProfileRepository
	agencyRepo repository.AgencyProfileRepository
}

// NewKycService creates the KYC service
func NewKycService(kycRepo repository.KycRepository, userRepo repository.UserRepository, vendorRepo repository.VendorProfileRepository, agencyRepo repository.AgencyProfileRepository) *KycService {
	return &KycService{kycRepo: kycRepo, userRepo: userRepo, vendorRepo: vendorRepo, agencyRepo: agencyRepo}
}

// SubmitInput document submission
type SubmitInput struct {
	UserID       uint
	DocumentType string
	DocumentRef  string
}

// profileFor resolves the user's reviewable profile and its type
func (s *KycService) profileFor(userID uint) (string, uint, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", 0, err
	}
	if user == nil {
		return "", 0, ErrNotFound
	}
	switch user.Role {
	case constants.RoleVendor:
		profile, err := s.vendorRepo.GetByUserID(userID)
		if err != nil {
			return "", 0, err
		}
		if profile == nil {
			return "", 0, ErrNotFound
		}
		return constants.KycProfileVendor, profile.ID, nil
	case constants.RoleRider, constants.RoleAgency:
		profile, err := s.agencyRepo.GetByUserID(userID)
		if err != nil {
			return "", 0, err
		}
		if profile == nil {
			return "", 0, ErrNotFound
		}
		return constants.KycProfileAgency, profile.ID, nil
	default:
		return "", 0, ErrForbidden
	}
}

// Submit records a new document submission. Any earlier pending submission
// is superseded and the profile drops back to pending review.
func (s *KycService) Submit(input SubmitInput) (*models.KycSubmission, error) {
	docType := strings.TrimSpace(input.DocumentType)
	docRef := strings.TrimSpace(input.DocumentRef)
	if docType == "" || docRef == "" {
		return nil, ErrValidation
	}

	profileType, profileID, err := s.profileFor(input.UserID)
	if err != nil {
		return nil, err
	}

	submission := &models.KycSubmission{
		UserID:       input.UserID,
		ProfileType:  profileType,
		DocumentType: docType,
		DocumentRef:  docRef,
		Status:       constants.KycStatusPending,
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		kycRepo := s.kycRepo.WithTx(tx)
		prior, err := kycRepo.GetLatestByUser(input.UserID, profileType)
		if err != nil {
			return err
		}
		if prior != nil && prior.Status == constants.KycStatusPending {
			prior.Status = constants.KycStatusRejected
			prior.RejectReason = "superseded by a newer submission"
			if err := kycRepo.Update(prior); err != nil {
				return err
			}
		}
		if err := kycRepo.Create(submission); err != nil {
			return err
		}
		return s.setProfileStatus(tx, profileType, profileID, constants.KycStatusPending)
	})
	if err != nil {
		return nil, err
	}
	return submission, nil
}

// Status returns the user's newest submission, nil when none exists
func (s *KycService) Status(userID uint) (*models.KycSubmission, error) {
	profileType, _, err := s.profileFor(userID)
	if err != nil {
		return nil, err
	}
	return s.kycRepo.GetLatestByUser(userID, profileType)
}

// Approve marks a pending submission approved and unlocks the profile
func (s *KycService) Approve(adminID, submissionID uint) (*models.KycSubmission, error) {
	return s.review(adminID, submissionID, constants.KycStatusApproved, "")
}

// Reject marks a pending submission rejected. The reason is mandatory and
// checked before anything is written.
func (s *KycService) Reject(adminID, submissionID uint, reason string) (*models.KycSubmission, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrRejectReasonMissing
	}
	return s.review(adminID, submissionID, constants.KycStatusRejected, strings.TrimSpace(reason))
}

func (s *KycService) review(adminID, submissionID uint, decision, reason string) (*models.KycSubmission, error) {
	submission, err := s.kycRepo.GetByID(submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, ErrNotFound
	}
	if submission.Status != constants.KycStatusPending {
		return nil, ErrInvalidTransition
	}

	_, profileID, err := s.profileFor(submission.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	submission.Status = decision
	submission.RejectReason = reason
	submission.ReviewedBy = &adminID
	submission.ReviewedAt = &now
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.kycRepo.WithTx(tx).Update(submission); err != nil {
			return err
		}
		return s.setProfileStatus(tx, submission.ProfileType, profileID, decision)
	})
	if err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *KycService) setProfileStatus(tx *gorm.DB, profileType string, profileID uint, status string) error {
	updates := map[string]interface{}{"kyc_status": status}
	if profileType == constants.KycProfileAgency {
		return s.agencyRepo.WithTx(tx).UpdateFields(profileID, updates)
	}
	return s.vendorRepo.WithTx(tx).UpdateFields(profileID, updates)
}

// ListQueue pages submissions for admin review
func (s *KycService) ListQueue(filter repository.KycListFilter) ([]models.KycSubmission, int64, error) {
	return s.kycRepo.List(filter)
}
