package response

import "github.com/gravitrone/ora-response/cli/internal/api"

// APIService adapts the HTTP client to Service.
type APIService struct {
	Client *api.Client
}

// NewAPIService wraps client.
func NewAPIService(client *api.Client) APIService {
	return APIService{Client: client}
}

func (s APIService) RenderPartial(view string) (string, error) {
	return s.Client.RenderPartial(view)
}

func (s APIService) SaveDraft(text string) error {
	return s.Client.SaveDraft(text)
}

func (s APIService) SubmitFinal(text string) error {
	_, err := s.Client.SubmitFinal(text)
	return err
}
