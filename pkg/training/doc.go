/*
Package training drives repeated fitting of pipeline steps: an epoch
trainer and a scheduler for periodic retraining.

# Trainer

Trainer fits a step over several epochs, reshuffling the training data
before each pass:

	trainer := training.NewWithConfig(model, training.TrainerConfig{
		Epochs:      10,
		ShuffleSeed: 42,
	})
	report, err := trainer.Train(ctx, container)

Each epoch fits on a shuffled copy of the container; the shuffle seed
advances between epochs so the order differs per epoch but the whole run
stays reproducible.

# Scheduled Retraining

RetrainScheduler refits on a cron expression or fixed interval, pulling
fresh data from a source function:

	sched, err := training.NewRetrainScheduler(trainer, source,
		training.SchedulerConfig{CronExpr: "0 0 3 * * *"})
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() { <-sched.Stop() }()

A retraining run still in progress when the next trigger fires is not
stacked; the trigger is skipped and counted.
*/
package training
