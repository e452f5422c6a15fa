/*
Package observability provides tools for monitoring the toy robot engine.

Metrics plugs into domain.LifecycleHooks and exposes Prometheus collectors:

  - toyrobot_commands_total{command,outcome}: every applied command.
  - toyrobot_robot_placed: 1 once the robot is on the table.
*/
package observability
