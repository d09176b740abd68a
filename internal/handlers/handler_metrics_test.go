package handlers_test

import (
	"net/http"
	"net/http/httptest"

	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/mock"
)

func labelValue(m *io_prometheus_client.Metric, name string) string {
	for _, l := range m.Label {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

func (suite *HandlerTestSuite) TestMetrics_PublicAndCountsRequests() {
	suite.health.On("Check", mock.Anything).Return(nil).Twice()
	for range 2 {
		suite.router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	}
	suite.router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users", nil))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	suite.Require().Equal(http.StatusOK, w.Code)

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(w.Body)
	suite.Require().NoError(err)

	requests, ok := families["http_requests_total"]
	suite.Require().True(ok, "request counter is exported")
	counts := map[string]float64{}
	for _, m := range requests.Metric {
		counts[labelValue(m, "method")+" "+labelValue(m, "path")+" "+labelValue(m, "status")] = m.GetCounter().GetValue()
	}
	suite.Equal(2.0, counts["GET /healthcheck 200"])
	suite.Equal(1.0, counts["GET /users 401"])

	duration, ok := families["http_request_duration_seconds"]
	suite.Require().True(ok, "duration histogram is exported")
	suite.Equal(io_prometheus_client.MetricType_HISTOGRAM, duration.GetType())
}
