// Package services: services/metrics_service.go
package services

import (
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"
	"go-student-dashboard/logger"
	"go-student-dashboard/models"
)

// MetricsPublisher records dashboard activity.
type MetricsPublisher interface {
	PublishLogin(success bool)
	PublishRecordCaptured(t models.RecordType)
}

// NoopPublisher drops every metric.
type NoopPublisher struct{}

func (NoopPublisher) PublishLogin(bool)                       {}
func (NoopPublisher) PublishRecordCaptured(models.RecordType) {}

// CloudWatchPublisher pushes counters to CloudWatch.
type CloudWatchPublisher struct {
	client    cloudwatchiface.CloudWatchAPI
	namespace string
}

// NewCloudWatchPublisher reuses a single CloudWatch client for all metrics calls.
func NewCloudWatchPublisher(client cloudwatchiface.CloudWatchAPI, namespace string) *CloudWatchPublisher {
	return &CloudWatchPublisher{client: client, namespace: namespace}
}

// PublishLogin counts successful and failed logins separately.
func (p *CloudWatchPublisher) PublishLogin(success bool) {
	outcome := "Failed"
	if success {
		outcome = "Succeeded"
	}
	p.putMetric("Logins", 1, "Count", "Outcome", outcome)
}

// PublishRecordCaptured counts captured achievements per type.
func (p *CloudWatchPublisher) PublishRecordCaptured(t models.RecordType) {
	p.putMetric("RecordsCaptured", 1, "Count", "RecordType", string(t))
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func (p *CloudWatchPublisher) putMetric(metricName string, value float64, unit, dimName, dimValue string) {
	_, err := p.client.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(p.namespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Dimensions: []*cloudwatch.Dimension{
					{
						Name:  aws.String(dimName),
						Value: aws.String(dimValue),
					},
				},
				Timestamp: aws.Time(time.Now()),
				Value:     aws.Float64(value),
				Unit:      aws.String(unit),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
