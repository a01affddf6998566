package telegram

import (
	"context"
	"errors"
	"exam_template_backend/internal/service"
	"exam_template_backend/internal/util"
	"exam_template_backend/pkg/logger"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// MaxMessageRunes Telegram 单条消息上限 4096，留出前缀空间
const MaxMessageRunes = 3900

const (
	modeTemplate = "template"
	modeAnswers  = "answers"
	modeExtract  = "extract"
)

const helpText = `发送答案原文，返回填空模版与评分 YAML。
命令：
/template <答案原文>  生成双模版（默认）
/answers <ABCD...>  选择题字母转评分 YAML
/extract <试卷内容>  调用大模型整理 1-12 题
/engine [deepseek|gemini]  查看或切换整理引擎`

// Sender 只依赖发送能力，便于测试
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TemplateRunner interface {
	GenerateDual(ctx context.Context, content string) (*service.DualTemplateResult, error)
	ProcessAnswers(ctx context.Context, answers, format string) (*service.LetterAnswerResult, error)
}

type Extractor interface {
	Extract(ctx context.Context, req service.ExtractRequest) (*service.ExtractResult, error)
	Engine(name string) (service.ExtractEngine, error)
}

type Router struct {
	Bot       Sender
	Templates TemplateRunner
	Extract   Extractor
	Timeout   time.Duration

	modes   sync.Map // chatID -> string
	engines sync.Map // chatID -> string
}

func (r *Router) setMode(chatID int64, mode string) { r.modes.Store(chatID, mode) }

func (r *Router) getMode(chatID int64) string {
	if v, ok := r.modes.Load(chatID); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return modeTemplate
}

func (r *Router) getEngine(chatID int64) string {
	if v, ok := r.engines.Load(chatID); ok {
		s, _ := v.(string)
		return s
	}
	return ""
}

func (r *Router) context() (context.Context, context.CancelFunc) {
	if r.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), r.Timeout)
}

// HandleUpdate 命令切换模式；普通文本按当前模式处理
func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	cid := msg.Chat.ID

	if msg.IsCommand() {
		r.HandleCommand(msg)
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		r.send(cid, "请发送文本内容")
		return
	}
	r.dispatch(cid, r.getMode(cid), text)
}

func (r *Router) HandleCommand(msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		r.send(cid, helpText)
	case modeTemplate, modeAnswers, modeExtract:
		mode := msg.Command()
		r.setMode(cid, mode)
		if args == "" {
			r.send(cid, "已切换到 /"+mode+"，请发送内容")
			return
		}
		r.dispatch(cid, mode, args)
	case "engine":
		r.handleEngineCommand(cid, args)
	default:
		r.send(cid, "未知命令，发送 /start 查看帮助")
	}
}

func (r *Router) handleEngineCommand(chatID int64, args string) {
	if args == "" {
		cur := r.getEngine(chatID)
		if cur == "" {
			cur = "默认"
		}
		r.send(chatID, "当前引擎："+cur+"\n用法：/engine deepseek 或 /engine gemini")
		return
	}

	e, err := r.Extract.Engine(args)
	if err != nil {
		r.SendError(chatID, err)
		return
	}
	r.engines.Store(chatID, e.Name())
	r.send(chatID, "已切换引擎："+e.Name())
}

func (r *Router) dispatch(chatID int64, mode, text string) {
	ctx, cancel := r.context()
	defer cancel()

	switch mode {
	case modeAnswers:
		res, err := r.Templates.ProcessAnswers(ctx, text, "")
		if err != nil {
			r.SendError(chatID, err)
			return
		}
		r.SendResult(chatID, "评分 YAML", res.Result)
	case modeExtract:
		res, err := r.Extract.Extract(ctx, service.ExtractRequest{
			Content: text,
			Engine:  r.getEngine(chatID),
		})
		if err != nil {
			r.SendError(chatID, err)
			return
		}
		r.SendResult(chatID, "整理结果（"+res.Engine+"）", res.Result)
	default:
		res, err := r.Templates.GenerateDual(ctx, text)
		if err != nil {
			r.SendError(chatID, err)
			return
		}
		r.SendResult(chatID, "模版一", res.Template1)
		r.SendResult(chatID, "模版二", res.Template2)
		r.send(chatID, fmt.Sprintf("共 %d 题，评分 %d 空，跳过 %d 空", res.Blocks, res.Graded, res.Skipped))
	}
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		logger.Log.Warn("telegram send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) SendResult(chatID int64, title, text string) {
	if strings.TrimSpace(text) == "" {
		text = "（空）"
	}
	r.send(chatID, "📝 "+title+"：\n\n"+Truncate(text, MaxMessageRunes))
}

func (r *Router) SendError(chatID int64, err error) {
	switch {
	case errors.Is(err, util.ErrEmptyAnswerInput),
		errors.Is(err, util.ErrAPIKeyMissing),
		errors.Is(err, util.ErrGeminiKeyMissing),
		errors.Is(err, util.ErrContentMissing),
		errors.Is(err, util.ErrUnknownEngine):
		r.send(chatID, err.Error())
	default:
		logger.Log.Error("telegram request failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.send(chatID, "处理失败："+err.Error())
	}
}

// Truncate 按字符截断，避免切断多字节字符
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
