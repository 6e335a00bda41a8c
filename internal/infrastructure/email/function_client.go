// Package email отправляет шаблонные письма через внешнюю edge-функцию.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/matheusgmdr7/contratando2/internal/domain/repository"
	"github.com/matheusgmdr7/contratando2/internal/logger"
	"github.com/matheusgmdr7/contratando2/internal/pkg/apperror"
	"github.com/matheusgmdr7/contratando2/internal/validation"
)

var defaultSubjects = map[repository.EmailKind]string{
	repository.EmailProposalClient:    "Complete sua proposta de plano de saúde",
	repository.EmailProposalCompleted: "Proposta completada pelo cliente",
	repository.EmailProposalSigned:    "Proposta assinada",
	repository.EmailProposalApproved:  "Proposta aprovada",
	repository.EmailProposalRejected:  "Proposta rejeitada",
}

// payload — тело запроса к функции. Пустые необязательные поля не отправляются.
type payload struct {
	To       string `json:"to"`
	Nome     string `json:"nome"`
	Subject  string `json:"subject"`
	Tipo     string `json:"tipo"`
	Corretor string `json:"corretor,omitempty"`
	Link     string `json:"link,omitempty"`
	Cliente  string `json:"cliente,omitempty"`
	Proposta string `json:"proposta,omitempty"`
	Valor    string `json:"valor,omitempty"`
	Comissao string `json:"comissao,omitempty"`
	Motivo   string `json:"motivo,omitempty"`
	From     string `json:"from_name,omitempty"`
}

type functionError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FunctionClient вызывает edge-функцию отправки писем по HTTPS.
type FunctionClient struct {
	url     string
	token   string
	client  *http.Client
	limiter *rate.Limiter
	from    string
}

func NewFunctionClient(url, token string, timeout time.Duration, perSecond float64) *FunctionClient {
	if perSecond <= 0 {
		perSecond = 2
	}
	return &FunctionClient{
		url:     url,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// WithSenderName задаёт имя отправителя в письмах.
func (c *FunctionClient) WithSenderName(name string) *FunctionClient {
	c.from = strings.TrimSpace(name)
	return c
}

func (c *FunctionClient) Send(ctx context.Context, msg repository.EmailMessage) error {
	body, err := buildPayload(msg)
	if err != nil {
		return err
	}
	body.From = c.from

	if err := c.limiter.Wait(ctx); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeUpstreamUnavailable, "envio de email cancelado")
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "não foi possível montar o email")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(raw))
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeInternal, "não foi possível montar o email")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("apikey", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeUpstreamUnavailable, "serviço de email indisponível")
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperror.Wrap(
			fmt.Errorf("HTTP %d: %s", resp.StatusCode, upstreamMessage(respBody)),
			apperror.ErrCodeUpstreamUnavailable, "serviço de email recusou o envio",
		)
	}

	logger.Component("email").WithFields(logrus.Fields{
		"tipo": body.Tipo,
		"to":   body.To,
	}).Info("email: письмо отправлено")
	return nil
}

func upstreamMessage(body []byte) string {
	var fe functionError
	if err := json.Unmarshal(body, &fe); err == nil {
		if fe.Error != "" {
			return fe.Error
		}
		if fe.Message != "" {
			return fe.Message
		}
	}
	return strings.TrimSpace(string(body))
}

// buildPayload проверяет обязательные поля до обращения к функции.
func buildPayload(msg repository.EmailMessage) (payload, error) {
	to := strings.TrimSpace(msg.To)
	name := strings.TrimSpace(msg.Name)
	if to == "" {
		return payload{}, apperror.Validation("email do destinatário é obrigatório")
	}
	if err := validation.ValidateEmail(to); err != nil {
		return payload{}, err
	}
	if name == "" {
		return payload{}, apperror.Validation("nome do destinatário é obrigatório")
	}
	if msg.Kind == "" {
		return payload{}, apperror.Validation("tipo de email é obrigatório")
	}

	subject := msg.Subject
	if subject == "" {
		subject = defaultSubjects[msg.Kind]
	}
	return payload{
		To:       to,
		Nome:     name,
		Subject:  subject,
		Tipo:     string(msg.Kind),
		Corretor: msg.Broker,
		Link:     msg.Link,
		Cliente:  msg.Client,
		Proposta: msg.Proposal,
		Valor:    msg.Value,
		Comissao: msg.Commission,
		Motivo:   msg.Reason,
	}, nil
}

// LogSender имитирует отправку в development: проверяет письмо и пишет его в лог.
type LogSender struct {
	log *logrus.Entry
}

func NewLogSender() *LogSender {
	return &LogSender{log: logger.Component("email")}
}

func (s *LogSender) Send(_ context.Context, msg repository.EmailMessage) error {
	body, err := buildPayload(msg)
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"tipo":    body.Tipo,
		"to":      body.To,
		"subject": body.Subject,
		"link":    body.Link,
	}).Info("email: отправка смоделирована")
	return nil
}
